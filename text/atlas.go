package text

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
)

// GlyphKey identifies one rasterized glyph image.
type GlyphKey struct {
	Font  drawing.FontID
	Glyph font.GID
	Size  fixed.Int26_6
}

// drawingKey converts k to the key of the drawing package's per-frame glyph
// table.
func (k GlyphKey) drawingKey() drawing.GlyphKey {
	return drawing.GlyphKey{
		Font:  k.Font,
		Glyph: uint32(k.Glyph),
		Size:  int32(k.Size),
	}
}

// Placement is where an atlas stored a glyph image.
type Placement struct {
	// Texture holds the image. It may be nil only for empty glyphs.
	Texture drawing.TextureSource

	// Source is the image's texel rectangle. An empty Source marks a glyph
	// with no visible pixels, such as a space.
	Source drawing.Rect

	// Bearing is the offset of the image's top-left corner from the pen
	// position, in pixels with y pointing down.
	Bearing drawing.Point
}

// Visible reports whether the placement has pixels to draw.
func (p Placement) Visible() bool {
	return !p.Source.IsEmpty()
}

// binding converts p to a drawing.GlyphBinding.
func (p Placement) binding() drawing.GlyphBinding {
	return drawing.GlyphBinding{Texture: p.Texture, Source: p.Source, Bearing: p.Bearing}
}

// Atlas rasterizes glyphs on demand and reports where they were stored.
//
// Place is called once per key until the Layout's cache evicts it. Atlases
// that repack must invalidate the Layout with Layout.Reset.
type Atlas interface {
	Place(key GlyphKey) (Placement, error)
}

// AtlasFunc adapts a function to the Atlas interface.
type AtlasFunc func(key GlyphKey) (Placement, error)

// Place calls f(key).
func (f AtlasFunc) Place(key GlyphKey) (Placement, error) {
	return f(key)
}
