package drawing

// GlyphKey identifies one rasterized glyph.
type GlyphKey struct {
	Font  FontID
	Glyph uint32
	// Size is the pixel size in 26.6 fixed point.
	Size int32
}

// GlyphBinding locates a rasterized glyph inside a texture.
type GlyphBinding struct {
	Texture TextureSource
	// Source is the glyph's texel rectangle.
	Source Rect
	// Bearing offsets the glyph image from the pen position.
	Bearing Point
}

// GlyphBlit draws one glyph image. Texture masks are tinted by Color.
type GlyphBlit struct {
	Dest    RectI
	Source  Rect
	Color   Color
	Texture TextureSource
}

// GlyphRun is a sequence of glyph blits drawn with one transform.
type GlyphRun struct {
	Glyphs []GlyphBlit
}

// Len returns the number of glyphs.
func (r GlyphRun) Len() int {
	return len(r.Glyphs)
}
