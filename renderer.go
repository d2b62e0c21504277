package drawing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Renderer records one frame into a Drawing.
//
// Draw methods never return errors. The first failure is kept (see Err), all
// later draws are ignored, and End discards the frame and returns the
// failure.
//
// Every frame must be finished with End; until then the Drawing refuses
// new frames and Render.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	d *Drawing
	g *Graphics

	clipIndex uint32
	clipDepth int
	opacity   float32

	err   error
	ended bool
}

// Graphics returns the frame's recording context.
func (r *Renderer) Graphics() *Graphics {
	return r.g
}

// SetOpacity sets the opacity multiplied into every following draw.
func (r *Renderer) SetOpacity(opacity float32) {
	r.opacity = opacity
}

// Opacity returns the renderer opacity.
func (r *Renderer) Opacity() float32 {
	return r.opacity
}

// Err returns the first recording failure, or nil.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// usable reports whether draws should still be recorded.
func (r *Renderer) usable() bool {
	if r.ended {
		r.fail(ErrRendererEnded)
		return false
	}
	return r.err == nil
}

// DrawShape draws an untextured shape.
func (r *Renderer) DrawShape(d Drawable[Shape]) {
	r.draw(d.Source, d.Transform, nil)
}

// DrawTexturedShape draws a shape whose vertices carry texel coordinates
// into tex.
func (r *Renderer) DrawTexturedShape(d Drawable[Shape], tex TextureSource) {
	if tex == nil {
		r.fail(ErrNilTexture)
		return
	}
	r.draw(d.Source, d.Transform, tex)
}

// DrawTexture draws all of tex stretched to dst.
func (r *Renderer) DrawTexture(tex TextureSource, dst RectI, opacity float32) {
	if tex == nil {
		r.fail(ErrNilTexture)
		return
	}
	blit := TextureBlit(Rect{Size: tex.Size()}, dst, White)
	r.DrawTexturedShape(NewDrawable(blit).Opacity(opacity), tex)
}

// DrawTextureAt draws all of tex unscaled with its top-left corner at origin.
func (r *Renderer) DrawTextureAt(tex TextureSource, origin Point, opacity float32) {
	if tex == nil {
		r.fail(ErrNilTexture)
		return
	}
	r.DrawTexture(tex, RectI{Origin: origin, Size: tex.Size()}, opacity)
}

// DrawGlyphs draws every glyph of a run with the run's transform. Glyphs
// sharing a texture batch into one command.
func (r *Renderer) DrawGlyphs(d Drawable[GlyphRun]) {
	for _, glyph := range d.Source.Glyphs {
		if glyph.Texture == nil {
			r.fail(ErrNilTexture)
			return
		}
		r.draw(TextureBlit(glyph.Source, glyph.Dest, glyph.Color), d.Transform, glyph.Texture)
	}
}

// draw is the single batching path shared by every draw method.
func (r *Renderer) draw(shape Shape, t Transform, tex TextureSource) {
	if !r.usable() || len(shape.Indices) == 0 {
		return
	}
	d := r.d

	mapped := d.vertexMap[:0]
	for _, v := range shape.Vertices {
		idx, err := d.vertices.GetOrInsert(v)
		if err != nil {
			r.fail(err)
			return
		}
		mapped = append(mapped, idx)
	}
	d.vertexMap = mapped

	first := len(d.indices)
	if uint64(first)+uint64(len(shape.Indices)) > math.MaxUint32 {
		r.fail(fmt.Errorf("frame holds %d indices: %w", first, ErrCapacityExceeded))
		return
	}
	for _, i := range shape.Indices {
		if uint64(i) >= uint64(len(mapped)) {
			r.fail(fmt.Errorf("index %d with %d vertices: %w", i, len(mapped), ErrInvalidIndex))
			return
		}
		d.indices = append(d.indices, mapped[i])
	}

	constants := PushConstants{
		Scale:   PointF{X: 1, Y: 1},
		Opacity: r.opacity,
	}
	var texture TextureID
	if tex != nil {
		texture = tex.ID()
		constants.Flags |= FlagTextured
		if tex.IsMask() {
			constants.Flags |= FlagMasked
		}
		if _, ok := d.textures[texture]; !ok {
			d.textures[texture] = tex.BindGroup(r.g)
		}
	}
	if scale, ok := t.Scaling(); ok {
		constants.Flags |= FlagScale
		constants.Scale = scale
	}
	if rotation, ok := t.Rotation(); ok {
		constants.Flags |= FlagRotate
		constants.Rotation = rotation.Radians()
	}
	if opacity, ok := t.Alpha(); ok {
		constants.Opacity = opacity * r.opacity
	}
	constants.Translation = r.g.clip.Current().Origin.Signed().Add(t.Translation)
	constants.normalize()

	indices := IndexRange{Start: uint32(first), End: uint32(len(d.indices))}
	if err := d.commands.appendDraw(r.clipIndex, indices, texture, constants); err != nil {
		r.fail(err)
	}
}

// PushClip narrows the clip to rect, relative to the current clip, until the
// matching PopClip. Drawing at (0,0) then draws at the clip's origin.
func (r *Renderer) PushClip(rect Rect) {
	if r.ended {
		r.fail(ErrRendererEnded)
		return
	}
	r.g.clip.Push(rect)
	r.resolveClip()
}

// PopClip restores the clip that was active before the matching PushClip.
func (r *Renderer) PopClip() {
	if r.ended {
		return
	}
	if r.g.clip.Depth() <= r.clipDepth {
		Logger().Warn("drawing: PopClip without matching PushClip")
		return
	}
	r.g.clip.Pop()
	r.resolveClip()
}

func (r *Renderer) resolveClip() {
	id, err := r.d.clips.Resolve(r.g.clip.Current())
	if err != nil {
		r.fail(err)
		return
	}
	r.clipIndex = id
}

// ClipGuard pops a clip pushed by Renderer.ClipTo.
type ClipGuard struct {
	r      *Renderer
	popped bool
}

// Pop restores the previous clip. Pop is idempotent.
func (g *ClipGuard) Pop() {
	if g.popped {
		return
	}
	g.popped = true
	g.r.PopClip()
}

// ClipTo pushes rect and returns a guard that pops it.
//
// Example:
//
//	guard := r.ClipTo(drawing.R(10, 10, 100, 50))
//	defer guard.Pop()
func (r *Renderer) ClipTo(rect Rect) *ClipGuard {
	r.PushClip(rect)
	return &ClipGuard{r: r}
}

// Clipped calls fn with rect pushed and pops it when fn returns or panics.
func (r *Renderer) Clipped(rect Rect, fn func(*Renderer) error) error {
	guard := r.ClipTo(rect)
	defer guard.Pop()
	return fn(r)
}

// GlyphBinding returns the binding recorded for key during this frame.
func (r *Renderer) GlyphBinding(key GlyphKey) (GlyphBinding, bool) {
	b, ok := r.d.glyphs[key]
	return b, ok
}

// BindGlyph records where key was placed for the rest of this frame.
func (r *Renderer) BindGlyph(key GlyphKey, binding GlyphBinding) {
	r.d.glyphs[key] = binding
}

// VertexCount returns the number of unique vertices recorded.
func (r *Renderer) VertexCount() int {
	return r.d.vertices.Len()
}

// TriangleCount returns the number of triangles recorded.
func (r *Renderer) TriangleCount() int {
	return len(r.d.indices) / 3
}

// CommandCount returns the number of commands Render will replay.
func (r *Renderer) CommandCount() int {
	return r.d.commands.Len()
}

// End finishes the frame and uploads it.
//
// If recording failed, the frame is discarded, the GPU buffers keep the
// previous frame, and the failure is returned. A frame without indices
// leaves the GPU buffers untouched. End is idempotent.
func (r *Renderer) End() error {
	if r.ended {
		if errors.Is(r.err, ErrRendererEnded) {
			return nil
		}
		return r.err
	}
	r.ended = true
	d := r.d
	d.active = false

	if depth := r.g.clip.Depth(); depth > r.clipDepth {
		Logger().Warn("drawing: frame ended with unpopped clips", slog.Int("count", depth-r.clipDepth))
		for r.g.clip.Depth() > r.clipDepth {
			r.g.clip.Pop()
		}
	}

	if r.err != nil {
		d.discard()
		Logger().Warn("drawing: frame discarded", slog.String("err", r.err.Error()))
		return r.err
	}

	if len(d.indices) == 0 {
		return nil
	}
	if err := d.upload(r.g.device); err != nil {
		r.err = err
		d.discard()
		return err
	}

	Logger().Debug("drawing: frame recorded",
		slog.Int("vertices", d.vertices.Len()),
		slog.Int("indices", len(d.indices)),
		slog.Int("commands", d.commands.Len()),
		slog.Int("clips", d.clips.Len()))
	return nil
}

// discard drops a frame that cannot be rendered.
func (d *Drawing) discard() {
	d.commands.reset()
	d.indices = d.indices[:0]
	d.vertices.Reset()
}
