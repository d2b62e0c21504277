package main

import (
	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/text"
)

// shelfAtlas packs glyph cells left to right in rows of one mask texture.
// It only reserves space; the demo never uploads glyph pixels.
type shelfAtlas struct {
	texture *drawing.BoundTexture
	size    uint32
	x, y    uint32
	row     uint32
}

func newShelfAtlas(ids *drawing.IDAllocator, size uint32) *shelfAtlas {
	return &shelfAtlas{
		texture: drawing.NewMaskTexture(ids, drawing.Size{Width: size, Height: size}, 2),
		size:    size,
	}
}

// Place reserves an em-sized cell for key.
func (a *shelfAtlas) Place(key text.GlyphKey) (text.Placement, error) {
	em := uint32(key.Size.Ceil())
	if em == 0 {
		return text.Placement{}, nil
	}
	w, h := em*3/5, em
	if a.x+w > a.size {
		a.x = 0
		a.y += a.row
		a.row = 0
	}
	if a.y+h > a.size {
		// Full: start over. Cached placements may now overlap new ones.
		a.x, a.y, a.row = 0, 0, 0
	}
	src := drawing.R(a.x, a.y, w, h)
	a.x += w
	a.row = max(a.row, h)
	return text.Placement{
		Texture: a.texture,
		Source:  src,
		Bearing: drawing.Pt(0, -int32(h*4/5)),
	}, nil
}
