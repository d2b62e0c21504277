// Package text turns shaped text into glyph runs for the drawing package.
//
// Shaping is done by go-text/typesetting's HarfBuzz port. [Shaper] splits a
// string into bidi and script segments, shapes each segment, and returns the
// shaped outputs in visual order. [Layout] walks shaped glyphs, asks an
// [Atlas] where each glyph image lives, and produces a [drawing.GlyphRun].
//
// Glyph rasterization and atlas packing are left to the Atlas implementation.
//
// Example:
//
//	face, err := text.LoadFace(ids, ttfData)
//	if err != nil {
//	    return err
//	}
//	shaper := text.NewShaper()
//	layout := text.NewLayout(face, atlas, 1024)
//
//	outputs := shaper.Shape(face, "Hello, world", fixed.I(16))
//	run, err := layout.Line(outputs, fixed.P(10, 30), drawing.Black)
//	if err != nil {
//	    return err
//	}
//	r.DrawGlyphs(drawing.NewDrawable(run))
package text
