// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/drawing/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const (
	// ConstantsStride is the distance in bytes between two uniform slots.
	// It equals the WebGPU minimum uniform offset alignment.
	ConstantsStride = 256

	// commandConstantsSize is the size of the per-command constants that
	// drawing encodes.
	commandConstantsSize = 28

	// uniformSize is the size of the Constants struct in the batch shader:
	// the command constants, padding, and the viewport at offset 32.
	uniformSize = 40

	// vertexStride matches drawing.VertexSize.
	vertexStride = 20
)

// batchVertexLayout describes drawing.Vertex.
func batchVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatSint32x2, Offset: 0, ShaderLocation: 0},  // location
				{Format: gputypes.VertexFormatUint32x2, Offset: 8, ShaderLocation: 1},  // texel
				{Format: gputypes.VertexFormatUint32, Offset: 16, ShaderLocation: 2},   // rgba
			},
		},
	}
}

// constantSlots is a uniform buffer split into ConstantsStride slots, each
// with its own bind group.
type constantSlots struct {
	buffer gpucore.BufferID
	groups []hal.BindGroup
}

// Pipeline is the render pipeline that replays drawing commands.
//
// Group 0 of the pipeline layout is the texture group (texture at binding 0,
// sampler at binding 1); create texture bind groups against TextureLayout
// and register them with Device.RegisterBindGroup. Group 1 carries the
// constants and is managed by Pass.
type Pipeline struct {
	device *Device

	shader          hal.ShaderModule
	textureLayout   hal.BindGroupLayout
	constantsLayout hal.BindGroupLayout
	layout          hal.PipelineLayout
	pipeline        hal.RenderPipeline
	sampler         hal.Sampler

	constants constantSlots
}

// NewPipeline compiles the batch shader and creates a pipeline rendering to
// targets of format. slots is the number of commands a single Pass can
// replay.
func NewPipeline(device *Device, format gputypes.TextureFormat, slots int) (p *Pipeline, err error) {
	if slots <= 0 {
		return nil, fmt.Errorf("native: pipeline needs at least one constant slot, got %d", slots)
	}
	p = &Pipeline{device: device}
	defer func() {
		if err != nil {
			p.Destroy()
			p = nil
		}
	}()

	spirv, err := CompileBatchShader()
	if err != nil {
		return nil, err
	}
	hd := device.HAL()

	if p.shader, err = hd.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "drawing_batch_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	}); err != nil {
		return nil, fmt.Errorf("native: create shader module: %w", err)
	}

	if p.textureLayout, err = hd.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "drawing_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("native: create texture layout: %w", err)
	}

	if p.constantsLayout, err = hd.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "drawing_constants_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("native: create constants layout: %w", err)
	}

	if p.layout, err = hd.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "drawing_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.textureLayout, p.constantsLayout},
	}); err != nil {
		return nil, fmt.Errorf("native: create pipeline layout: %w", err)
	}

	if p.sampler, err = hd.CreateSampler(&hal.SamplerDescriptor{
		Label:        "drawing_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	}); err != nil {
		return nil, fmt.Errorf("native: create sampler: %w", err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	if p.pipeline, err = hd.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "drawing_batch_pipeline",
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    batchVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}); err != nil {
		return nil, fmt.Errorf("native: create render pipeline: %w", err)
	}

	if err = p.createSlots(slots); err != nil {
		return nil, err
	}

	slogger().Debug("native: pipeline created",
		slog.String("format", fmt.Sprint(format)),
		slog.Int("slots", slots))
	return p, nil
}

func (p *Pipeline) createSlots(slots int) error {
	id, err := p.device.CreateBuffer("drawing_constants", uint64(slots)*ConstantsStride,
		gpucore.BufferUsageUniform|gpucore.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	p.constants.buffer = id
	buf, _ := p.device.Buffer(id)

	for i := range slots {
		group, err := p.device.HAL().CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("drawing_constants_%d", i),
			Layout: p.constantsLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(), Offset: uint64(i) * ConstantsStride, Size: uniformSize,
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("native: create constants bind group %d: %w", i, err)
		}
		p.constants.groups = append(p.constants.groups, group)
	}
	return nil
}

// TextureLayout returns the layout of bind group 0.
func (p *Pipeline) TextureLayout() hal.BindGroupLayout {
	return p.textureLayout
}

// Sampler returns the sampler for texture bind groups.
func (p *Pipeline) Sampler() hal.Sampler {
	return p.sampler
}

// Slots returns the number of commands a Pass can replay.
func (p *Pipeline) Slots() int {
	return len(p.constants.groups)
}

// Begin binds the pipeline on encoder and returns a gpucore.RenderPass
// replaying into a viewport of width by height pixels.
//
// Constants are uploaded through the queue, so only one Pass per queue
// submission may use a Pipeline.
func (p *Pipeline) Begin(encoder RenderPassEncoder, width, height uint32) *Pass {
	encoder.SetPipeline(p.pipeline)
	return newPass(p.device, encoder, &p.constants, width, height)
}

// Destroy releases all pipeline resources in reverse creation order.
// Destroy is idempotent.
func (p *Pipeline) Destroy() {
	hd := p.device.HAL()
	for _, g := range p.constants.groups {
		hd.DestroyBindGroup(g)
	}
	p.constants.groups = nil
	if p.constants.buffer != gpucore.InvalidID {
		p.device.DestroyBuffer(p.constants.buffer)
		p.constants.buffer = gpucore.InvalidID
	}
	if p.pipeline != nil {
		hd.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		hd.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.layout != nil {
		hd.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.constantsLayout != nil {
		hd.DestroyBindGroupLayout(p.constantsLayout)
		p.constantsLayout = nil
	}
	if p.textureLayout != nil {
		hd.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.shader != nil {
		hd.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// encodeUniform writes command constants and the viewport into dst, which
// must hold uniformSize bytes.
func encodeUniform(dst, constants []byte, width, height uint32) error {
	if len(constants) != commandConstantsSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrInvalidConstants, len(constants), commandConstantsSize)
	}
	if len(dst) < uniformSize {
		return errors.New("native: uniform buffer too small")
	}
	clear(dst[:uniformSize])
	copy(dst, constants)
	binary.LittleEndian.PutUint32(dst[32:], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(dst[36:], math.Float32bits(float32(height)))
	return nil
}
