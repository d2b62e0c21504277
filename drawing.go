package drawing

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/drawing/buffer"
	"github.com/gogpu/drawing/gpucore"
)

// renderingBuffers are the GPU buffers of the last uploaded frame.
type renderingBuffers struct {
	vertex *buffer.Diffable[Vertex]
	index  *buffer.Diffable[uint32]
}

func (b *renderingBuffers) destroy() {
	b.vertex.Destroy()
	b.index.Destroy()
}

// Drawing is a compiled frame of batched draw commands that persists across
// frames. Record a frame with NewFrame, then replay it with Render as often as
// needed.
//
// Drawing is NOT safe for concurrent use.
type Drawing struct {
	opts options

	buffers  *renderingBuffers
	vertices *VertexCache
	indices  []uint32
	clips    *ClipTable
	commands *CommandList

	textures   map[TextureID]gpucore.BindGroupID
	glyphs     map[GlyphKey]GlyphBinding
	operations []operationState

	// vertexMap is scratch space mapping shape vertices to cache indices.
	vertexMap []uint32

	active    bool
	destroyed bool
}

// NewDrawing creates an empty Drawing.
func NewDrawing(opts ...Option) *Drawing {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Drawing{
		opts:     o,
		vertices: NewVertexCache(),
		clips:    NewClipTable(),
		commands: newCommandList(),
		textures: make(map[TextureID]gpucore.BindGroupID),
		glyphs:   make(map[GlyphKey]GlyphBinding),
	}
}

// NewFrame discards the previous frame's commands and returns a Renderer
// recording a new one. The clip active on g becomes clip id 0.
//
// Only one Renderer per Drawing may be active; NewFrame returns
// ErrFrameInProgress until the previous Renderer has ended. Every Renderer
// must be ended with End; one dropped without End leaves the Drawing
// unusable. To abandon a frame, end it and skip Render; the next NewFrame
// discards it.
func (d *Drawing) NewFrame(g *Graphics) (*Renderer, error) {
	switch {
	case d.destroyed:
		return nil, ErrDestroyed
	case d.active:
		return nil, ErrFrameInProgress
	}

	d.reset()
	d.clips.Reset(g.clip.Current())
	d.active = true

	return &Renderer{
		d:         d,
		g:         g,
		opacity:   1,
		clipDepth: g.clip.Depth(),
	}, nil
}

// reset clears all per-frame state. GPU buffers are kept.
func (d *Drawing) reset() {
	d.commands.reset()
	d.indices = d.indices[:0]
	d.vertices.Reset()
	clear(d.textures)
	clear(d.glyphs)
	for _, op := range d.operations {
		op.reset()
	}
}

// upload synchronizes the GPU buffers with the recorded frame.
func (d *Drawing) upload(device gpucore.Device) error {
	if d.buffers == nil {
		vertex, err := buffer.New[Vertex](device, VertexCodec{},
			d.opts.bufferOptions("drawing vertices", gpucore.BufferUsageVertex))
		if err != nil {
			return err
		}
		index, err := buffer.New[uint32](device, IndexCodec{},
			d.opts.bufferOptions("drawing indices", gpucore.BufferUsageIndex))
		if err != nil {
			return err
		}
		d.buffers = &renderingBuffers{vertex: vertex, index: index}
	}

	if err := d.buffers.vertex.Update(d.vertices.Vertices()); err != nil {
		return fmt.Errorf("drawing: upload vertices: %w", err)
	}
	if err := d.buffers.index.Update(d.indices); err != nil {
		return fmt.Errorf("drawing: upload indices: %w", err)
	}
	return nil
}

// Render replays the last recorded frame into rg.
//
// opacity multiplies every draw's opacity. The origin of rg's current clip
// translates the whole drawing. Clip rectangles recorded in the frame are used
// as scissors unchanged.
func (d *Drawing) Render(opacity float32, rg *RenderingGraphics) error {
	switch {
	case d.destroyed:
		return ErrDestroyed
	case d.active:
		return ErrFrameInProgress
	}

	pass := rg.pass
	original := rg.clip.current
	defer func() { rg.clip.current = original }()
	translation := original.Origin.Signed()

	var (
		clipIndex     uint32
		haveClip      bool
		texture       TextureID
		needsBinding  = true
		buffersBound  bool
		constantBytes [PushConstantsSize]byte
	)

	for i := range d.commands.commands {
		cmd := &d.commands.commands[i]

		if !haveClip || cmd.ClipIndex != clipIndex {
			haveClip = true
			clipIndex = cmd.ClipIndex
			rg.clip.current = d.clips.Clip(clipIndex)
			if rg.clip.current.IsEmpty() {
				continue
			}
			pass.SetScissorRect(rg.clip.current.Scissor())
		} else if rg.clip.current.IsEmpty() {
			continue
		}

		switch cmd.Kind {
		case CommandBuiltIn:
			if !buffersBound {
				pass.SetVertexBuffer(d.buffers.vertex.ID())
				pass.SetIndexBuffer(d.buffers.index.ID(), gpucore.IndexFormatUint32)
				buffersBound = true
			}

			if cmd.Texture != 0 {
				if cmd.Texture != texture {
					bg, ok := d.textures[cmd.Texture]
					if !ok {
						return fmt.Errorf("texture %d: %w", cmd.Texture, ErrMissingTextureBinding)
					}
					pass.SetBindGroup(bg)
					texture = cmd.Texture
					needsBinding = false
				}
			} else if needsBinding {
				pass.SetBindGroup(rg.defaultBinding)
				texture = 0
				needsBinding = false
			}

			c := cmd.Constants
			c.Opacity *= opacity
			c.Translation = c.Translation.Add(translation)
			c.normalize()
			c.encode(constantBytes[:])
			pass.SetConstants(constantBytes[:])
			pass.DrawIndexed(cmd.Indices.Start, cmd.Indices.Len())

		case CommandCustom:
			if err := d.operations[cmd.Operation].render(cmd.Prepared, opacity, rg); err != nil {
				return fmt.Errorf("drawing: render operation %d: %w", cmd.Operation, err)
			}
			needsBinding = true
			texture = 0
		}
	}
	return nil
}

// Commands returns the commands of the last recorded frame.
// The returned slice must not be modified.
func (d *Drawing) Commands() []Command {
	return d.commands.Commands()
}

// Vertices returns the unique vertices of the last recorded frame.
// The returned slice must not be modified.
func (d *Drawing) Vertices() []Vertex {
	return d.vertices.Vertices()
}

// Indices returns the indices of the last recorded frame.
// The returned slice must not be modified.
func (d *Drawing) Indices() []uint32 {
	return d.indices
}

// BufferStats returns the upload statistics of the last uploaded frame.
func (d *Drawing) BufferStats() (vertex, index buffer.Stats) {
	if d.buffers == nil {
		return buffer.Stats{}, buffer.Stats{}
	}
	return d.buffers.vertex.Stats(), d.buffers.index.Stats()
}

// Destroy releases the GPU buffers. Destroy is idempotent.
func (d *Drawing) Destroy() {
	if d.destroyed {
		return
	}
	if d.buffers != nil {
		d.buffers.destroy()
		d.buffers = nil
	}
	d.reset()
	d.destroyed = true
	Logger().Debug("drawing: destroyed", slog.Int("operations", len(d.operations)))
}
