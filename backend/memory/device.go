package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/drawing/gpucore"
)

// Device errors.
var (
	// ErrUnknownBuffer is returned when a buffer ID does not name a live buffer.
	ErrUnknownBuffer = errors.New("memory: unknown buffer")

	// ErrInvalidBufferSize is returned for zero or misaligned buffer sizes.
	ErrInvalidBufferSize = errors.New("memory: invalid buffer size")

	// ErrUnalignedWrite is recorded when a write violates the copy alignment.
	ErrUnalignedWrite = errors.New("memory: unaligned write")

	// ErrWriteOutOfRange is recorded when a write exceeds the buffer size.
	ErrWriteOutOfRange = errors.New("memory: write out of range")
)

// Buffer is a simulated GPU buffer.
type Buffer struct {
	Label string
	Usage gpucore.BufferUsage
	Data  []byte
}

// Write describes one WriteBuffer call that was applied.
type Write struct {
	Buffer gpucore.BufferID
	Offset uint64
	Size   int
}

// Device is a simulated gpucore.Device.
//
// Device is safe for concurrent use.
type Device struct {
	mu        sync.Mutex
	alignment uint64
	nextID    uint64
	buffers   map[gpucore.BufferID]*Buffer
	writes    []Write
	created   int
	destroyed int
	err       error
}

// NewDevice creates a device using gpucore.DefaultCopyAlignment.
func NewDevice() *Device {
	return NewDeviceWithAlignment(gpucore.DefaultCopyAlignment)
}

// NewDeviceWithAlignment creates a device with a custom copy alignment.
// alignment must be a power of two; other values fall back to the default.
func NewDeviceWithAlignment(alignment uint64) *Device {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		alignment = gpucore.DefaultCopyAlignment
	}
	return &Device{
		alignment: alignment,
		nextID:    1, // 0 is gpucore.InvalidID
		buffers:   make(map[gpucore.BufferID]*Buffer),
	}
}

// CopyAlignment returns the write alignment in bytes.
func (d *Device) CopyAlignment() uint64 {
	return d.alignment
}

// CreateBuffer creates a zero-filled buffer.
func (d *Device) CreateBuffer(label string, size uint64, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 || size%d.alignment != 0 {
		return gpucore.InvalidID, fmt.Errorf("create %q (%d bytes): %w", label, size, ErrInvalidBufferSize)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := gpucore.BufferID(d.nextID)
	d.nextID++
	d.buffers[id] = &Buffer{
		Label: label,
		Usage: usage,
		Data:  make([]byte, size),
	}
	d.created++
	return id, nil
}

// DestroyBuffer releases a buffer. Unknown IDs are ignored.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.buffers[id]; ok {
		delete(d.buffers, id)
		d.destroyed++
	}
}

// WriteBuffer copies data into a buffer. Violations of the gpucore.Device
// contract are recorded (see Err) and the write is dropped.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf, ok := d.buffers[id]
	switch {
	case !ok:
		d.record(fmt.Errorf("write to %d: %w", id, ErrUnknownBuffer))
		return
	case offset%d.alignment != 0 || uint64(len(data))%d.alignment != 0:
		d.record(fmt.Errorf("write %d bytes at %d: %w", len(data), offset, ErrUnalignedWrite))
		return
	case offset+uint64(len(data)) > uint64(len(buf.Data)):
		d.record(fmt.Errorf("write %d bytes at %d into %d: %w", len(data), offset, len(buf.Data), ErrWriteOutOfRange))
		return
	}

	copy(buf.Data[offset:], data)
	d.writes = append(d.writes, Write{Buffer: id, Offset: offset, Size: len(data)})
}

func (d *Device) record(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Err returns the first contract violation observed, or nil.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// ReadBuffer returns a copy of size bytes starting at offset.
func (d *Device) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf, ok := d.buffers[id]
	if !ok {
		return nil, fmt.Errorf("read %d: %w", id, ErrUnknownBuffer)
	}
	if offset+size > uint64(len(buf.Data)) {
		return nil, fmt.Errorf("read %d bytes at %d from %d: %w", size, offset, len(buf.Data), ErrWriteOutOfRange)
	}
	out := make([]byte, size)
	copy(out, buf.Data[offset:offset+size])
	return out, nil
}

// Buffer returns the simulated buffer for id, or nil.
func (d *Device) Buffer(id gpucore.BufferID) *Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffers[id]
}

// Writes returns the writes applied since the last ResetStats.
func (d *Device) Writes() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Write, len(d.writes))
	copy(out, d.writes)
	return out
}

// Created returns the number of buffers created since the last ResetStats.
func (d *Device) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// Destroyed returns the number of buffers destroyed since the last ResetStats.
func (d *Device) Destroyed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

// Live returns the number of buffers currently allocated.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

// ResetStats clears the write log and the create/destroy counters.
func (d *Device) ResetStats() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes = d.writes[:0]
	d.created = 0
	d.destroyed = 0
}

// Ensure Device implements gpucore.Device.
var _ gpucore.Device = (*Device)(nil)
