package text

import (
	"errors"
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/backend/memory"
)

const spaceGID font.GID = 3

// fakeAtlas places every glyph in a 10x12 cell except spaceGID, which is
// empty.
type fakeAtlas struct {
	texture *drawing.BoundTexture
	calls   map[GlyphKey]int
	err     error
}

func newFakeAtlas() *fakeAtlas {
	ids := drawing.NewIDAllocator()
	return &fakeAtlas{
		texture: drawing.NewMaskTexture(ids, drawing.Size{Width: 256, Height: 256}, 7),
		calls:   make(map[GlyphKey]int),
	}
}

func (a *fakeAtlas) Place(key GlyphKey) (Placement, error) {
	a.calls[key]++
	if a.err != nil {
		return Placement{}, a.err
	}
	if key.Glyph == spaceGID {
		return Placement{}, nil
	}
	return Placement{
		Texture: a.texture,
		Source:  drawing.R(uint32(key.Glyph)*10, 0, 10, 12),
		Bearing: drawing.Pt(1, -10),
	}, nil
}

func testFace(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace(drawing.NewIDAllocator(), goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func horizontalOutput(gids ...font.GID) shaping.Output {
	out := shaping.Output{Size: fixed.I(12), Direction: di.DirectionLTR}
	for _, gid := range gids {
		out.Glyphs = append(out.Glyphs, shaping.Glyph{GlyphID: gid, Advance: fixed.I(8)})
	}
	return out
}

func TestLayoutRun(t *testing.T) {
	atlas := newFakeAtlas()
	l := NewLayout(testFace(t), atlas, 0)

	run, err := l.Run(horizontalOutput(1, spaceGID, 1), fixed.P(100, 50), drawing.Red)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if run.Len() != 2 {
		t.Fatalf("Run().Len() = %d, want 2 (space skipped)", run.Len())
	}

	wantOrigins := []drawing.Point{drawing.Pt(101, 40), drawing.Pt(117, 40)}
	for i, g := range run.Glyphs {
		if g.Dest.Origin != wantOrigins[i] {
			t.Errorf("glyph %d origin = %v, want %v", i, g.Dest.Origin, wantOrigins[i])
		}
		if g.Dest.Size != (drawing.Size{Width: 10, Height: 12}) {
			t.Errorf("glyph %d size = %v, want 10x12", i, g.Dest.Size)
		}
		if g.Color != drawing.Red || g.Texture != drawing.TextureSource(atlas.texture) {
			t.Errorf("glyph %d color/texture = %v/%v", i, g.Color, g.Texture)
		}
	}

	key := GlyphKey{Font: l.Face().ID(), Glyph: 1, Size: fixed.I(12)}
	if atlas.calls[key] != 1 {
		t.Errorf("atlas placed glyph 1 %d times, want 1", atlas.calls[key])
	}
	if st := l.CacheStats(); st.Hits != 1 || st.Misses != 2 {
		t.Errorf("CacheStats() = %+v, want 1 hit, 2 misses", st)
	}
}

func TestLayoutRunOffsets(t *testing.T) {
	l := NewLayout(testFace(t), newFakeAtlas(), 0)
	out := shaping.Output{
		Size:      fixed.I(12),
		Direction: di.DirectionLTR,
		Glyphs: []shaping.Glyph{
			{GlyphID: 1, Advance: fixed.I(8), XOffset: fixed.I(2), YOffset: fixed.I(3)},
		},
	}

	run, err := l.Run(out, fixed.P(0, 20), drawing.White)
	if err != nil {
		t.Fatal(err)
	}
	// Offsets are y-up: +3 moves the glyph up by 3 pixels.
	if got, want := run.Glyphs[0].Dest.Origin, drawing.Pt(3, 7); got != want {
		t.Errorf("origin = %v, want %v", got, want)
	}
}

func TestLayoutRunVertical(t *testing.T) {
	l := NewLayout(testFace(t), newFakeAtlas(), 0)
	out := shaping.Output{Size: fixed.I(12), Direction: di.DirectionTTB}
	for i := 0; i < 2; i++ {
		out.Glyphs = append(out.Glyphs, shaping.Glyph{GlyphID: 1, Advance: -fixed.I(14)})
	}

	run, err := l.Run(out, fixed.P(0, 0), drawing.White)
	if err != nil {
		t.Fatal(err)
	}
	if dy := run.Glyphs[1].Dest.Origin.Y - run.Glyphs[0].Dest.Origin.Y; dy != 14 {
		t.Errorf("vertical step = %d, want 14", dy)
	}
	if run.Glyphs[0].Dest.Origin.X != run.Glyphs[1].Dest.Origin.X {
		t.Error("vertical run moved horizontally")
	}
}

func TestLayoutLine(t *testing.T) {
	l := NewLayout(testFace(t), newFakeAtlas(), 0)

	run, err := l.Line([]shaping.Output{
		horizontalOutput(1, 1),
		horizontalOutput(2),
	}, fixed.P(0, 20), drawing.White)
	if err != nil {
		t.Fatal(err)
	}
	if run.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", run.Len())
	}
	if got := run.Glyphs[2].Dest.Origin.X; got != 17 {
		t.Errorf("third glyph x = %d, want 17 (two 8px advances + bearing)", got)
	}
}

func TestLayoutErrors(t *testing.T) {
	boom := errors.New("atlas full")
	atlas := newFakeAtlas()
	atlas.err = boom
	l := NewLayout(testFace(t), atlas, 0)

	if _, err := l.Run(horizontalOutput(1), fixed.P(0, 0), drawing.White); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want atlas error", err)
	}

	noTexture := AtlasFunc(func(GlyphKey) (Placement, error) {
		return Placement{Source: drawing.R(0, 0, 4, 4)}, nil
	})
	l = NewLayout(testFace(t), noTexture, 0)
	if _, err := l.Run(horizontalOutput(1), fixed.P(0, 0), drawing.White); !errors.Is(err, ErrNoTexture) {
		t.Errorf("Run() error = %v, want ErrNoTexture", err)
	}
}

func TestLayoutReset(t *testing.T) {
	atlas := newFakeAtlas()
	l := NewLayout(testFace(t), atlas, 0)

	for i := 0; i < 2; i++ {
		if _, err := l.Run(horizontalOutput(1), fixed.P(0, 0), drawing.White); err != nil {
			t.Fatal(err)
		}
		l.Reset()
	}
	key := GlyphKey{Font: l.Face().ID(), Glyph: 1, Size: fixed.I(12)}
	if atlas.calls[key] != 2 {
		t.Errorf("atlas calls = %d, want 2 after Reset", atlas.calls[key])
	}
}

func TestLayoutDraw(t *testing.T) {
	atlas := newFakeAtlas()
	l := NewLayout(testFace(t), atlas, 0)

	d := drawing.NewDrawing()
	defer d.Destroy()
	g := drawing.NewGraphics(memory.NewDevice(), drawing.Size{Width: 200, Height: 100})

	r, err := d.NewFrame(g)
	if err != nil {
		t.Fatal(err)
	}
	outputs := []shaping.Output{horizontalOutput(1, 2, 1)}
	if err := l.Draw(r, outputs, fixed.P(10, 30), drawing.Black); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	key := GlyphKey{Font: l.Face().ID(), Glyph: 2, Size: fixed.I(12)}
	b, ok := r.GlyphBinding(key.drawingKey())
	if !ok || b.Source != drawing.R(20, 0, 10, 12) {
		t.Errorf("GlyphBinding() = %+v, %v, want glyph 2 cell", b, ok)
	}
	if r.CommandCount() != 1 {
		t.Errorf("CommandCount() = %d, want 1 (one atlas texture)", r.CommandCount())
	}
	if r.TriangleCount() != 6 {
		t.Errorf("TriangleCount() = %d, want 6", r.TriangleCount())
	}
	if err := r.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	cmd := d.Commands()[0]
	if !cmd.Constants.Flags.Has(drawing.FlagTextured | drawing.FlagMasked) {
		t.Errorf("Flags = %b, want textured|masked", cmd.Constants.Flags)
	}
	if st := l.CacheStats(); st.Misses != 2 {
		t.Errorf("CacheStats().Misses = %d, want 2 (frame table serves repeats)", st.Misses)
	}
}
