// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native runs drawings on a GPU through gogpu/wgpu's HAL.
//
// Device adapts a hal.Device and hal.Queue to gpucore.Device, so Diffable
// buffers upload through the queue. Pipeline compiles the batch shader and
// owns the uniform slots that carry per-command constants. Pass adapts a
// hal render pass encoder to gpucore.RenderPass.
//
// A typical frame:
//
//	device := native.NewDevice(halDevice, halQueue)
//	pipeline, err := native.NewPipeline(device, gputypes.TextureFormatBGRA8Unorm, 1024)
//	...
//	r, _ := d.NewFrame(drawing.NewGraphics(device, size))
//	// record
//	r.End()
//
//	pass := pipeline.Begin(encoder, size)
//	d.Render(1, drawing.NewRenderingGraphics(pass, size, whiteTexture))
//	if err := pass.Err(); err != nil { ... }
//
// Devices can also be taken from a gpucontext.DeviceProvider that exposes
// HAL handles; see NewDeviceFromProvider.
package native
