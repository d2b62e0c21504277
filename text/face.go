package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/drawing"
)

// Face is a parsed font with a drawing.FontID.
//
// Face is safe for concurrent use: it only holds the read-only parsed font.
type Face struct {
	id   drawing.FontID
	font *font.Font
}

// LoadFace parses TrueType or OpenType data and assigns it an id from ids.
func LoadFace(ids *drawing.IDAllocator, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Face{id: ids.NextFont(), font: parsed.Font}, nil
}

// ID returns the face's font id.
func (f *Face) ID() drawing.FontID {
	return f.id
}

// newShapingFace returns a go-text face for one shaping call.
// font.Face is NOT safe for concurrent use; font.Font is.
func (f *Face) newShapingFace() *font.Face {
	return font.NewFace(f.font)
}
