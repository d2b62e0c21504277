package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/internal/cache"
)

func loadGoRegular(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace(drawing.NewIDAllocator(), goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	return face
}

func TestLoadFace(t *testing.T) {
	ids := drawing.NewIDAllocator()

	if _, err := LoadFace(ids, nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("LoadFace(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := LoadFace(ids, []byte("not a font")); err == nil {
		t.Error("LoadFace(garbage) error = nil, want parse error")
	}

	a, err := LoadFace(ids, goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	b, err := LoadFace(ids, goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	if a.ID() == 0 || a.ID() == b.ID() {
		t.Errorf("font ids = %d, %d, want distinct non-zero", a.ID(), b.ID())
	}
}

func TestShaperShape(t *testing.T) {
	face := loadGoRegular(t)
	sh := NewShaper()

	outputs := sh.Shape(face, "Hello", fixed.I(16))
	if len(outputs) != 1 {
		t.Fatalf("len(Shape()) = %d, want 1", len(outputs))
	}
	out := outputs[0]
	if len(out.Glyphs) != 5 {
		t.Errorf("len(Glyphs) = %d, want 5", len(out.Glyphs))
	}
	if out.Advance <= 0 {
		t.Errorf("Advance = %v, want positive", out.Advance)
	}
	if out.Glyphs[2].GlyphID != out.Glyphs[3].GlyphID {
		t.Errorf("the two l glyphs differ: %d, %d", out.Glyphs[2].GlyphID, out.Glyphs[3].GlyphID)
	}

	if got := sh.Shape(face, "", fixed.I(16)); got != nil {
		t.Errorf("Shape(\"\") = %v, want nil", got)
	}
	if got := sh.Shape(nil, "x", fixed.I(16)); got != nil {
		t.Errorf("Shape(nil face) = %v, want nil", got)
	}
}

func TestCachedShaper(t *testing.T) {
	face := loadGoRegular(t)
	sh := NewCachedShaper(8)

	first := sh.Shape(face, "cached", fixed.I(12))
	second := sh.Shape(face, "cached", fixed.I(12))
	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("second Shape() did not return the cached outputs")
	}
	other := sh.Shape(face, "cached", fixed.I(14))
	if &other[0] == &first[0] {
		t.Error("different size shared a cache entry")
	}

	s := sh.CacheStats()
	if s.Hits != 1 || s.Misses != 2 || s.Len != 2 {
		t.Errorf("CacheStats() = %+v, want 1 hit, 2 misses, 2 entries", s)
	}
	if (NewShaper().CacheStats() != cache.Stats{}) {
		t.Error("uncached shaper reported statistics")
	}
}
