package text

import (
	"fmt"

	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/cache"
)

// DefaultCacheSize is the number of glyph placements a Layout remembers
// when NewLayout is given a non-positive size.
const DefaultCacheSize = 1024

// Layout positions shaped glyphs of one face.
//
// Layout is safe for concurrent use if its Atlas is.
type Layout struct {
	face       *Face
	atlas      Atlas
	placements *cache.Cache[GlyphKey, Placement]
}

// NewLayout creates a layout placing glyphs of face through atlas, caching
// up to cacheSize placements.
func NewLayout(face *Face, atlas Atlas, cacheSize int) *Layout {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Layout{
		face:       face,
		atlas:      atlas,
		placements: cache.New[GlyphKey, Placement](cacheSize),
	}
}

// Face returns the layout's face.
func (l *Layout) Face() *Face {
	return l.face
}

// Reset forgets all cached placements.
func (l *Layout) Reset() {
	l.placements.Clear()
}

// CacheStats returns placement cache statistics.
func (l *Layout) CacheStats() cache.Stats {
	return l.placements.Stats()
}

// Run converts one shaped output into glyph blits. origin is the pen
// position on the baseline. Empty glyphs advance the pen but are not drawn.
func (l *Layout) Run(out shaping.Output, origin fixed.Point26_6, color drawing.Color) (drawing.GlyphRun, error) {
	var run drawing.GlyphRun
	_, err := l.appendOutput(&run, out, origin, color, l.place)
	return run, err
}

// Line converts outputs laid end to end, as returned by Shaper.Shape, into
// one glyph run.
func (l *Layout) Line(outputs []shaping.Output, origin fixed.Point26_6, color drawing.Color) (drawing.GlyphRun, error) {
	return l.line(outputs, origin, color, l.place)
}

// Draw lays out outputs and draws them on r. Placements are memoized in r's
// per-frame glyph table before falling back to the layout cache.
func (l *Layout) Draw(r *drawing.Renderer, outputs []shaping.Output, origin fixed.Point26_6, color drawing.Color) error {
	place := func(key GlyphKey) (Placement, error) {
		dk := key.drawingKey()
		if b, ok := r.GlyphBinding(dk); ok {
			return Placement{Texture: b.Texture, Source: b.Source, Bearing: b.Bearing}, nil
		}
		p, err := l.place(key)
		if err != nil {
			return Placement{}, err
		}
		r.BindGlyph(dk, p.binding())
		return p, nil
	}

	run, err := l.line(outputs, origin, color, place)
	if err != nil {
		return err
	}
	r.DrawGlyphs(drawing.NewDrawable(run))
	return nil
}

func (l *Layout) line(outputs []shaping.Output, origin fixed.Point26_6, color drawing.Color, place func(GlyphKey) (Placement, error)) (drawing.GlyphRun, error) {
	var run drawing.GlyphRun
	pen := origin
	for _, out := range outputs {
		next, err := l.appendOutput(&run, out, pen, color, place)
		if err != nil {
			return drawing.GlyphRun{}, err
		}
		pen = next
	}
	return run, nil
}

// appendOutput appends the blits of out to run and returns the pen position
// after the last glyph.
func (l *Layout) appendOutput(run *drawing.GlyphRun, out shaping.Output, pen fixed.Point26_6, color drawing.Color, place func(GlyphKey) (Placement, error)) (fixed.Point26_6, error) {
	vertical := out.Direction.IsVertical()

	for _, g := range out.Glyphs {
		key := GlyphKey{Font: l.face.ID(), Glyph: g.GlyphID, Size: out.Size}
		p, err := place(key)
		if err != nil {
			return pen, fmt.Errorf("text: place glyph %d: %w", g.GlyphID, err)
		}

		if p.Visible() {
			if p.Texture == nil {
				return pen, fmt.Errorf("glyph %d: %w", g.GlyphID, ErrNoTexture)
			}
			// Shaper offsets point up; drawing coordinates point down.
			x := (pen.X + g.XOffset).Round()
			y := (pen.Y - g.YOffset).Round()
			run.Glyphs = append(run.Glyphs, drawing.GlyphBlit{
				Dest: drawing.RectI{
					Origin: drawing.Point{X: int32(x) + p.Bearing.X, Y: int32(y) + p.Bearing.Y},
					Size:   p.Source.Size,
				},
				Source:  p.Source,
				Color:   color,
				Texture: p.Texture,
			})
		}

		if vertical {
			pen.Y -= g.Advance
		} else {
			pen.X += g.Advance
		}
	}
	return pen, nil
}

// place looks key up in the placement cache, asking the atlas on a miss.
func (l *Layout) place(key GlyphKey) (Placement, error) {
	return l.placements.GetOrCreate(key, func() (Placement, error) {
		return l.atlas.Place(key)
	})
}
