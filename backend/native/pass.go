// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/drawing/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderPassEncoder is the subset of hal.RenderPassEncoder a Pass records
// into.
type RenderPassEncoder interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	SetScissorRect(x, y, width, height uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// Bind group indices of the batch pipeline.
const (
	textureGroup   = 0
	constantsGroup = 1
)

// Pass implements gpucore.RenderPass on a HAL render pass encoder.
//
// gpucore.RenderPass methods cannot fail, so the first failure is kept and
// the calls after it are dropped. Check Err after drawing.Drawing.Render.
type Pass struct {
	device  *Device
	encoder RenderPassEncoder
	slots   *constantSlots
	next    int

	width, height uint32
	uniform       [uniformSize]byte

	err error
}

func newPass(device *Device, encoder RenderPassEncoder, slots *constantSlots, width, height uint32) *Pass {
	return &Pass{
		device:  device,
		encoder: encoder,
		slots:   slots,
		width:   width,
		height:  height,
	}
}

func (p *Pass) fail(err error) {
	if p.err == nil {
		p.err = err
		slogger().Warn("native: pass failed", "err", err)
	}
}

// Err returns the first failure of the pass, or nil.
func (p *Pass) Err() error {
	return p.err
}

// ConstantsUsed returns the number of uniform slots the pass consumed.
func (p *Pass) ConstantsUsed() int {
	return p.next
}

// SetVertexBuffer implements gpucore.RenderPass.
func (p *Pass) SetVertexBuffer(id gpucore.BufferID) {
	if p.err != nil {
		return
	}
	buf, ok := p.device.Buffer(id)
	if !ok {
		p.fail(fmt.Errorf("%w: vertex buffer %d", ErrUnknownBuffer, id))
		return
	}
	p.encoder.SetVertexBuffer(0, buf, 0)
}

// SetIndexBuffer implements gpucore.RenderPass.
func (p *Pass) SetIndexBuffer(id gpucore.BufferID, format gpucore.IndexFormat) {
	if p.err != nil {
		return
	}
	buf, ok := p.device.Buffer(id)
	if !ok {
		p.fail(fmt.Errorf("%w: index buffer %d", ErrUnknownBuffer, id))
		return
	}
	p.encoder.SetIndexBuffer(buf, convertIndexFormat(format), 0)
}

// SetBindGroup implements gpucore.RenderPass. id selects the texture group.
func (p *Pass) SetBindGroup(id gpucore.BindGroupID) {
	if p.err != nil {
		return
	}
	group, ok := p.device.BindGroup(id)
	if !ok {
		p.fail(fmt.Errorf("%w: %d", ErrUnknownBindGroup, id))
		return
	}
	p.encoder.SetBindGroup(textureGroup, group, nil)
}

// SetScissorRect implements gpucore.RenderPass. The rectangle is clamped to
// the viewport.
func (p *Pass) SetScissorRect(rect gpucore.ScissorRect) {
	if p.err != nil {
		return
	}
	x := min(rect.X, p.width)
	y := min(rect.Y, p.height)
	w := min(rect.Width, p.width-x)
	h := min(rect.Height, p.height-y)
	p.encoder.SetScissorRect(x, y, w, h)
}

// SetConstants implements gpucore.RenderPass. Each call consumes one
// uniform slot of the pipeline.
func (p *Pass) SetConstants(data []byte) {
	if p.err != nil {
		return
	}
	if p.next >= len(p.slots.groups) {
		p.fail(fmt.Errorf("%w: %d slots", ErrConstantsExhausted, len(p.slots.groups)))
		return
	}
	if err := encodeUniform(p.uniform[:], data, p.width, p.height); err != nil {
		p.fail(err)
		return
	}
	slot := p.next
	p.next++
	if err := p.device.writeBuffer(p.slots.buffer, uint64(slot)*ConstantsStride, p.uniform[:]); err != nil {
		p.fail(err)
		return
	}
	p.encoder.SetBindGroup(constantsGroup, p.slots.groups[slot], nil)
}

// DrawIndexed implements gpucore.RenderPass.
func (p *Pass) DrawIndexed(firstIndex, count uint32) {
	if p.err != nil {
		return
	}
	p.encoder.DrawIndexed(count, 1, firstIndex, 0, 0)
}

func convertIndexFormat(format gpucore.IndexFormat) gputypes.IndexFormat {
	if format == gpucore.IndexFormatUint16 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

var _ gpucore.RenderPass = (*Pass)(nil)
