package drawing

import (
	"bytes"
	"errors"
	"testing"
)

func TestVertexCodecLayout(t *testing.T) {
	v := Vertex{
		Location: Point{X: -2, Y: 0x01020304},
		Texture:  UPoint{X: 0x0A0B0C0D, Y: 7},
		Color:    0x11223344,
	}
	got := make([]byte, VertexSize)
	VertexCodec{}.Encode(got, v)

	want := []byte{
		0xFE, 0xFF, 0xFF, 0xFF, // x = -2
		0x04, 0x03, 0x02, 0x01, // y
		0x0D, 0x0C, 0x0B, 0x0A, // u
		0x07, 0x00, 0x00, 0x00, // v
		0x44, 0x33, 0x22, 0x11, // rgba
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x\nwant       % x", got, want)
	}
	if (VertexCodec{}).Size() != 20 || (IndexCodec{}).Size() != 4 {
		t.Error("codec sizes differ from the documented layout")
	}
}

func TestVertexCacheDedup(t *testing.T) {
	c := NewVertexCache()
	a := Vertex{Location: Pt(1, 2), Color: White}
	b := Vertex{Location: Pt(1, 2), Color: Black}

	ia, _ := c.GetOrInsert(a)
	ib, _ := c.GetOrInsert(b)
	ia2, _ := c.GetOrInsert(a)

	if ia != 0 || ib != 1 || ia2 != 0 {
		t.Errorf("indices = %d, %d, %d, want 0, 1, 0", ia, ib, ia2)
	}
	if c.Len() != 2 || c.Vertices()[1] != b {
		t.Errorf("Vertices() = %v", c.Vertices())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d", c.Len())
	}
	if i, _ := c.GetOrInsert(b); i != 0 {
		t.Errorf("GetOrInsert() after Reset = %d, want 0", i)
	}
}

func TestVertexCacheCapacity(t *testing.T) {
	c := NewVertexCache()
	c.limit = 1
	if _, err := c.GetOrInsert(Vertex{}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrInsert(Vertex{Color: 1}); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("GetOrInsert() error = %v, want ErrCapacityExceeded", err)
	}
	if i, err := c.GetOrInsert(Vertex{}); err != nil || i != 0 {
		t.Errorf("known vertex at capacity = %d, %v", i, err)
	}
}

func TestShapeHelpers(t *testing.T) {
	rect := FilledRect(RI(-5, 10, 20, 30), Red)
	if len(rect.Vertices) != 4 || len(rect.Indices) != 6 {
		t.Fatalf("FilledRect() has %d vertices, %d indices", len(rect.Vertices), len(rect.Indices))
	}
	if rect.Vertices[3].Location != Pt(15, 40) {
		t.Errorf("bottom-right = %v, want (15, 40)", rect.Vertices[3].Location)
	}

	blit := TextureBlit(R(8, 16, 4, 4), RI(0, 0, 8, 8), White)
	if blit.Vertices[0].Texture != (UPoint{X: 8, Y: 16}) || blit.Vertices[3].Texture != (UPoint{X: 12, Y: 20}) {
		t.Errorf("texel corners = %v, %v", blit.Vertices[0].Texture, blit.Vertices[3].Texture)
	}

	wide := Shape16{Vertices: rect.Vertices, Indices: []uint16{0, 1, 2}}.Widen()
	if len(wide.Indices) != 3 || wide.Indices[2] != 2 {
		t.Errorf("Widen() = %v", wide.Indices)
	}
}
