package buffer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/drawing/gpucore"
)

// Errors returned by Diffable.
var (
	// ErrDestroyed is returned by Update after Destroy.
	ErrDestroyed = errors.New("buffer: destroyed")

	// ErrInvalidOptions is returned by New for unusable options.
	ErrInvalidOptions = errors.New("buffer: invalid options")
)

// errAlignment aborts a diff pass whose runs cannot be aligned.
// It never leaves this package: Update reallocates instead.
var errAlignment = errors.New("buffer: run cannot be aligned")

// Stats describes the GPU traffic of the most recent Update.
type Stats struct {
	// Reallocated is true if the buffer was (re)created.
	Reallocated bool

	// Runs is the number of WriteBuffer calls issued.
	Runs int

	// BytesWritten is the total number of bytes uploaded.
	BytesWritten int
}

// run is a half-open byte range of the physical buffer.
type run struct {
	start, end uint64
}

// Diffable is a GPU buffer that uploads only what changed between updates.
//
// The zero value is not usable; create one with New. The GPU buffer itself is
// created lazily by the first non-empty Update.
//
// Diffable is NOT safe for concurrent use.
type Diffable[T comparable] struct {
	device gpucore.Device
	codec  Codec[T]
	opts   Options
	elem   uint64

	id       gpucore.BufferID
	capacity int // elements the buffer was sized for
	used     int // logical length

	// shadow holds the element at every slot of the physical buffer,
	// including slots past used left over from earlier updates.
	shadow []T
	// staged is the byte image of the physical buffer.
	staged []byte

	stats     Stats
	destroyed bool
}

// New creates an unallocated Diffable buffer on device.
func New[T comparable](device gpucore.Device, codec Codec[T], opts Options) (*Diffable[T], error) {
	if device == nil {
		return nil, fmt.Errorf("%w: nil device", ErrInvalidOptions)
	}
	if codec == nil || codec.Size() <= 0 {
		return nil, fmt.Errorf("%w: codec must encode at least one byte", ErrInvalidOptions)
	}
	resolved, err := opts.resolve(device)
	if err != nil {
		return nil, err
	}
	return &Diffable[T]{
		device: device,
		codec:  codec,
		opts:   resolved,
		elem:   uint64(codec.Size()),
	}, nil
}

// Update makes the GPU buffer hold contents.
//
// After a successful Update, Data equals contents and the first Len elements
// of the GPU buffer equal contents. Empty contents cause no GPU traffic.
func (b *Diffable[T]) Update(contents []T) error {
	if b.destroyed {
		return ErrDestroyed
	}
	b.stats = Stats{}

	if len(contents) == 0 {
		b.used = 0
		return nil
	}

	if b.id == gpucore.InvalidID || len(contents) > b.capacity {
		return b.reallocate(contents)
	}

	runs, err := b.diff(contents)
	if err != nil {
		slogger().Debug("buffer: diff aborted, reallocating",
			slog.String("label", b.opts.Label),
			slog.Int("elements", len(contents)))
		return b.reallocate(contents)
	}
	b.patch(contents, runs)
	return nil
}

// reallocate replaces the GPU buffer with one sized exactly for contents.
func (b *Diffable[T]) reallocate(contents []T) error {
	size := alignUp(uint64(len(contents))*b.elem, b.opts.Alignment)

	id, err := b.device.CreateBuffer(b.opts.Label, size, b.opts.Usage)
	if err != nil {
		return fmt.Errorf("buffer: create %q (%d bytes): %w", b.opts.Label, size, err)
	}
	if b.id != gpucore.InvalidID {
		b.device.DestroyBuffer(b.id)
	}

	b.staged = make([]byte, size)
	for i, v := range contents {
		b.encodeAt(i, v)
	}
	b.device.WriteBuffer(id, 0, b.staged)

	b.shadow = append(b.shadow[:0], contents...)
	b.id = id
	b.capacity = len(contents)
	b.used = len(contents)
	b.stats = Stats{Reallocated: true, Runs: 1, BytesWritten: int(size)}

	slogger().Debug("buffer: reallocated",
		slog.String("label", b.opts.Label),
		slog.Int("elements", len(contents)),
		slog.Uint64("bytes", size))
	return nil
}

// diff returns the aligned byte runs that differ between contents and the
// shadow. It returns errAlignment if a run would need to grow by more than
// one element on either side to become aligned.
func (b *Diffable[T]) diff(contents []T) ([]run, error) {
	var runs []run
	threshold := b.opts.CoalesceThreshold
	n := len(contents)

	for i := 0; i < n; {
		if contents[i] == b.shadow[i] {
			i++
			continue
		}

		start, end := i, i+1
		for j := i + 1; j < n; j++ {
			if contents[j] != b.shadow[j] {
				end = j + 1
			} else if j+1-end > threshold {
				break
			}
		}

		r, err := b.align(start, end)
		if err != nil {
			return nil, err
		}
		if k := len(runs) - 1; k >= 0 && r.start <= runs[k].end {
			runs[k].end = max(runs[k].end, r.end)
		} else {
			runs = append(runs, r)
		}
		i = end
	}
	return runs, nil
}

// align converts the element range [start, end) to an aligned byte range.
func (b *Diffable[T]) align(start, end int) (run, error) {
	lo := uint64(start) * b.elem
	hi := uint64(end) * b.elem
	r := run{
		start: lo &^ (b.opts.Alignment - 1),
		end:   alignUp(hi, b.opts.Alignment),
	}
	if lo-r.start > b.elem || r.end-hi > b.elem || r.end > uint64(len(b.staged)) {
		return run{}, errAlignment
	}
	return r, nil
}

// patch uploads runs after copying contents into the shadow.
func (b *Diffable[T]) patch(contents []T, runs []run) {
	for i, v := range contents {
		if b.shadow[i] != v {
			b.shadow[i] = v
			b.encodeAt(i, v)
		}
	}
	for _, r := range runs {
		b.device.WriteBuffer(b.id, r.start, b.staged[r.start:r.end])
		b.stats.Runs++
		b.stats.BytesWritten += int(r.end - r.start)
	}
	b.used = len(contents)
}

func (b *Diffable[T]) encodeAt(i int, v T) {
	off := uint64(i) * b.elem
	b.codec.Encode(b.staged[off:off+b.elem], v)
}

// Data returns the logical contents last passed to Update.
// The returned slice must not be modified.
func (b *Diffable[T]) Data() []T {
	return b.shadow[:b.used]
}

// Len returns the logical element count. Draw with Len, never Capacity.
func (b *Diffable[T]) Len() int {
	return b.used
}

// Capacity returns the number of elements the GPU buffer can hold.
func (b *Diffable[T]) Capacity() int {
	return b.capacity
}

// ID returns the GPU buffer, or gpucore.InvalidID before the first upload.
func (b *Diffable[T]) ID() gpucore.BufferID {
	return b.id
}

// Stats returns traffic statistics for the most recent Update.
func (b *Diffable[T]) Stats() Stats {
	return b.stats
}

// Destroy releases the GPU buffer. Destroy is idempotent.
func (b *Diffable[T]) Destroy() {
	if b.destroyed {
		return
	}
	if b.id != gpucore.InvalidID {
		b.device.DestroyBuffer(b.id)
		b.id = gpucore.InvalidID
	}
	b.shadow = nil
	b.staged = nil
	b.capacity = 0
	b.used = 0
	b.destroyed = true
}

// alignUp rounds n up to a multiple of align, which must be a power of two.
func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
