// Package drawing is a batched 2D drawing core for gogpu.
//
// # Overview
//
// Application code records draw operations (tessellated shapes, textured
// blits, glyph runs) against a per-frame [Renderer]. The recorder turns that
// stream into as few GPU draw calls and as little buffer traffic as possible
// while preserving painter's-algorithm order and per-region clipping.
//
// # Quick Start
//
//	d := drawing.NewDrawing()
//	defer d.Destroy()
//
//	g := drawing.NewGraphics(device, drawing.Size{Width: 800, Height: 600})
//	r, err := d.NewFrame(g)
//	if err != nil {
//	    return err
//	}
//	r.DrawShape(drawing.NewDrawable(drawing.FilledRect(rect, drawing.White)))
//	if err := r.End(); err != nil {
//	    return err
//	}
//
//	// Later, inside a render pass:
//	err = d.Render(1, drawing.NewRenderingGraphics(pass, viewport, defaultBindGroup))
//
// # Batching
//
// Every draw maps its vertices through a per-frame [VertexCache] so that
// identical vertices are uploaded once, appends remapped indices, and either
// extends the previous [Command] or starts a new one. A draw extends the
// previous command only when the clip index, texture and [PushConstants] are
// all equal.
//
// # Clipping
//
// Clip rectangles are relative to the active clip and can never grow it.
// Use [Renderer.ClipTo] with defer, or [Renderer.Clipped], to keep pushes and
// pops balanced on every exit path.
//
// # Buffers
//
// Vertex and index data are uploaded through [buffer.Diffable], which writes
// only the element runs that changed since the previous frame.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Locations are unscaled integer pixels
package drawing
