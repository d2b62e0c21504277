// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/drawing/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device implements gpucore.Device on a HAL device and queue.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// Resource maps are protected by a mutex.
type Device struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	alignment uint64
	nextID    atomic.Uint64

	buffers    map[gpucore.BufferID]hal.Buffer
	bindGroups map[gpucore.BindGroupID]hal.BindGroup
}

// NewDevice wraps device and queue. The caller keeps ownership of both.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	d := &Device{
		device:     device,
		queue:      queue,
		alignment:  gpucore.DefaultCopyAlignment,
		buffers:    make(map[gpucore.BufferID]hal.Buffer),
		bindGroups: make(map[gpucore.BindGroupID]hal.BindGroup),
	}
	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)
	return d, nil
}

// NewDeviceFromProvider wraps the HAL device and queue of a provider such as
// a gogpu window. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewDevice(device, queue)
}

func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// HAL returns the wrapped device.
func (d *Device) HAL() hal.Device {
	return d.device
}

// Queue returns the wrapped queue.
func (d *Device) Queue() hal.Queue {
	return d.queue
}

// CopyAlignment implements gpucore.Device.
func (d *Device) CopyAlignment() uint64 {
	return d.alignment
}

// CreateBuffer implements gpucore.Device.
func (d *Device) CreateBuffer(label string, size uint64, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 {
		return gpucore.InvalidID, fmt.Errorf("create %q: %w", label, ErrInvalidBufferSize)
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", label, err)
	}

	id := gpucore.BufferID(d.newID())
	d.mu.Lock()
	d.buffers[id] = buf
	d.mu.Unlock()

	slogger().Debug("native: buffer created",
		slog.String("label", label),
		slog.Uint64("id", uint64(id)),
		slog.Uint64("size", size))
	return id, nil
}

// DestroyBuffer implements gpucore.Device.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBuffer(buf)
	}
}

// WriteBuffer implements gpucore.Device. Failed writes, including writes
// to unknown buffers, are logged and dropped.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	if err := d.writeBuffer(id, offset, data); err != nil {
		slogger().Warn("native: write buffer failed",
			slog.Uint64("id", uint64(id)),
			slog.String("err", err.Error()))
	}
}

func (d *Device) writeBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	buf, ok := d.Buffer(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.queue.WriteBuffer(buf, offset, data); err != nil {
		return fmt.Errorf("native: write buffer %d: %w", id, err)
	}
	return nil
}

// Buffer returns the HAL buffer behind id.
func (d *Device) Buffer(id gpucore.BufferID) (hal.Buffer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	buf, ok := d.buffers[id]
	return buf, ok
}

// RegisterBindGroup makes a HAL bind group usable as a drawing bind group,
// for example as a texture binding or the default binding. The Device does
// not take ownership; release it with ReleaseBindGroup.
func (d *Device) RegisterBindGroup(group hal.BindGroup) gpucore.BindGroupID {
	id := gpucore.BindGroupID(d.newID())
	d.mu.Lock()
	d.bindGroups[id] = group
	d.mu.Unlock()
	return id
}

// ReleaseBindGroup forgets id and returns the HAL bind group it named.
func (d *Device) ReleaseBindGroup(id gpucore.BindGroupID) (hal.BindGroup, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	group, ok := d.bindGroups[id]
	delete(d.bindGroups, id)
	return group, ok
}

// BindGroup returns the HAL bind group behind id.
func (d *Device) BindGroup(id gpucore.BindGroupID) (hal.BindGroup, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	group, ok := d.bindGroups[id]
	return group, ok
}

// LiveBuffers returns the number of buffers created and not destroyed.
func (d *Device) LiveBuffers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buffers)
}

// convertBufferUsage maps gpucore usage flags to gputypes.
func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage
	if usage.Has(gpucore.BufferUsageVertex) {
		result |= gputypes.BufferUsageVertex
	}
	if usage.Has(gpucore.BufferUsageIndex) {
		result |= gputypes.BufferUsageIndex
	}
	if usage.Has(gpucore.BufferUsageUniform) {
		result |= gputypes.BufferUsageUniform
	}
	if usage.Has(gpucore.BufferUsageCopyDst) {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage.Has(gpucore.BufferUsageCopySrc) {
		result |= gputypes.BufferUsageCopySrc
	}
	return result
}

var _ gpucore.Device = (*Device)(nil)
