package drawing

import (
	"github.com/gogpu/drawing/buffer"
	"github.com/gogpu/drawing/gpucore"
)

// Option configures a Drawing during creation.
//
// Example:
//
//	d := drawing.NewDrawing(
//	    drawing.WithCopyAlignment(8),
//	    drawing.WithCoalesceThreshold(32),
//	)
type Option func(*options)

// options holds optional configuration for Drawing creation.
type options struct {
	copyAlignment     uint64
	coalesceThreshold int
}

// defaultOptions returns the default drawing options.
func defaultOptions() options {
	return options{
		copyAlignment:     0, // device CopyAlignment
		coalesceThreshold: buffer.DefaultCoalesceThreshold,
	}
}

// WithCopyAlignment overrides the byte alignment used for partial buffer
// writes. It must be a power of two; 0 uses the device's alignment.
func WithCopyAlignment(bytes uint64) Option {
	return func(o *options) {
		o.copyAlignment = bytes
	}
}

// WithCoalesceThreshold sets how many unchanged elements a dirty run may
// bridge before a buffer update splits it into separate writes.
func WithCoalesceThreshold(n int) Option {
	return func(o *options) {
		o.coalesceThreshold = n
	}
}

// bufferOptions returns the buffer options for a buffer with label and usage.
func (o options) bufferOptions(label string, usage gpucore.BufferUsage) buffer.Options {
	return buffer.Options{
		Label:             label,
		Usage:             usage,
		Alignment:         o.copyAlignment,
		CoalesceThreshold: o.coalesceThreshold,
	}
}
