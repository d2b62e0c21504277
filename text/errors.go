package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoTexture is returned when an atlas places a visible glyph without
	// a texture.
	ErrNoTexture = errors.New("text: glyph placed without texture")
)
