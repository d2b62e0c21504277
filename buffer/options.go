package buffer

import (
	"fmt"

	"github.com/gogpu/drawing/gpucore"
)

// DefaultCoalesceThreshold is the number of unchanged elements a dirty run
// may bridge before it is split in two.
const DefaultCoalesceThreshold = 16

// Options configures a Diffable buffer.
type Options struct {
	// Label is the debug label passed to the device.
	Label string

	// Usage is the buffer usage. BufferUsageCopyDst is always added.
	Usage gpucore.BufferUsage

	// Alignment is the copy alignment in bytes for partial writes.
	// If 0, the device's CopyAlignment is used. Must be a power of two.
	Alignment uint64

	// CoalesceThreshold is the maximum run of unchanged elements merged into
	// a surrounding dirty run. 0 disables bridging. Must not be negative.
	CoalesceThreshold int
}

// DefaultOptions returns options with the default coalesce threshold.
func DefaultOptions(label string, usage gpucore.BufferUsage) Options {
	return Options{
		Label:             label,
		Usage:             usage,
		CoalesceThreshold: DefaultCoalesceThreshold,
	}
}

// resolve validates o and fills in device defaults.
func (o Options) resolve(device gpucore.Device) (Options, error) {
	if o.Alignment == 0 {
		o.Alignment = device.CopyAlignment()
	}
	if o.Alignment == 0 || o.Alignment&(o.Alignment-1) != 0 {
		return o, fmt.Errorf("%w: alignment %d is not a power of two", ErrInvalidOptions, o.Alignment)
	}
	if o.CoalesceThreshold < 0 {
		return o, fmt.Errorf("%w: negative coalesce threshold %d", ErrInvalidOptions, o.CoalesceThreshold)
	}
	o.Usage |= gpucore.BufferUsageCopyDst
	return o, nil
}
