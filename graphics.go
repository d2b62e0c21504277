package drawing

import "github.com/gogpu/drawing/gpucore"

// Graphics is the recording context of one frame.
type Graphics struct {
	device gpucore.Device
	size   Size
	clip   *ClipStack
}

// NewGraphics creates a context recording for a viewport of size.
func NewGraphics(device gpucore.Device, size Size) *Graphics {
	return &Graphics{
		device: device,
		size:   size,
		clip:   NewClipStack(size),
	}
}

// Device returns the GPU device buffers are created on.
func (g *Graphics) Device() gpucore.Device { return g.device }

// Size returns the viewport size.
func (g *Graphics) Size() Size { return g.size }

// Clip returns the clip stack. Its current clip becomes clip id 0 of the
// next frame.
func (g *Graphics) Clip() *ClipStack { return g.clip }

// RenderingGraphics is the replay context of Drawing.Render.
type RenderingGraphics struct {
	pass           gpucore.RenderPass
	clip           *ClipStack
	defaultBinding gpucore.BindGroupID
}

// NewRenderingGraphics creates a replay context over pass.
// defaultBinding is bound for untextured draws.
func NewRenderingGraphics(pass gpucore.RenderPass, size Size, defaultBinding gpucore.BindGroupID) *RenderingGraphics {
	return &RenderingGraphics{
		pass:           pass,
		clip:           NewClipStack(size),
		defaultBinding: defaultBinding,
	}
}

// Pass returns the render pass.
func (rg *RenderingGraphics) Pass() gpucore.RenderPass { return rg.pass }

// Clip returns the clip stack. Its current origin translates everything
// Render replays; while a custom operation renders, the current clip is the
// operation's clip.
func (rg *RenderingGraphics) Clip() *ClipStack { return rg.clip }

// DefaultBinding returns the bind group used for untextured draws.
func (rg *RenderingGraphics) DefaultBinding() gpucore.BindGroupID { return rg.defaultBinding }
