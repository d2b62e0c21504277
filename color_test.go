package drawing

import (
	"image/color"
	"testing"
)

func TestColorComponents(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("RGBA() = %#08x, want 0x12345678", uint32(c))
	}
	if c.Red() != 0x12 || c.Green() != 0x34 || c.Blue() != 0x56 || c.Alpha() != 0x78 {
		t.Errorf("components = %x %x %x %x", c.Red(), c.Green(), c.Blue(), c.Alpha())
	}
	if got := c.WithAlpha(0xFF); got != 0x123456FF {
		t.Errorf("WithAlpha() = %#08x, want 0x123456ff", uint32(got))
	}
	if RGB(0xFF, 0, 0) != Red {
		t.Error("RGB(255, 0, 0) != Red")
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"nrgba", color.NRGBA{R: 1, G: 2, B: 3, A: 4}, RGBA(1, 2, 3, 4)},
		{"opaque rgba", color.RGBA{R: 255, A: 255}, Red},
		{"black", color.Black, Black},
		{"transparent", color.Transparent, Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.in); got != tt.want {
				t.Errorf("FromColor() = %#08x, want %#08x", uint32(got), uint32(tt.want))
			}
		})
	}

	if got := Blue.NRGBA(); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("NRGBA() = %v", got)
	}
}
