package drawing

// Shape is tessellated geometry: vertices plus triangle-list indices into
// them.
type Shape struct {
	Vertices []Vertex
	Indices  []uint32
}

// Shape16 is a Shape with 16-bit indices, as produced by tessellators
// targeting small meshes.
type Shape16 struct {
	Vertices []Vertex
	Indices  []uint16
}

// Widen converts s to a Shape.
func (s Shape16) Widen() Shape {
	indices := make([]uint32, len(s.Indices))
	for i, v := range s.Indices {
		indices[i] = uint32(v)
	}
	return Shape{Vertices: s.Vertices, Indices: indices}
}

// quadIndices are the triangle-list indices of a quad whose corners are
// ordered top-left, top-right, bottom-left, bottom-right.
var quadIndices = [6]uint32{0, 1, 2, 2, 1, 3}

// FilledRect returns an untextured quad covering rect.
func FilledRect(rect RectI, color Color) Shape {
	p0, p1 := rect.Origin, rect.Max()
	return Shape{
		Vertices: []Vertex{
			{Location: Point{X: p0.X, Y: p0.Y}, Color: color},
			{Location: Point{X: p1.X, Y: p0.Y}, Color: color},
			{Location: Point{X: p0.X, Y: p1.Y}, Color: color},
			{Location: Point{X: p1.X, Y: p1.Y}, Color: color},
		},
		Indices: quadIndices[:],
	}
}

// TextureBlit returns a textured quad drawing the texels in src to dst,
// tinted by color.
func TextureBlit(src Rect, dst RectI, color Color) Shape {
	d0, d1 := dst.Origin, dst.Max()
	s0, s1 := src.Origin, src.Max()
	return Shape{
		Vertices: []Vertex{
			{Location: Point{X: d0.X, Y: d0.Y}, Texture: UPoint{X: s0.X, Y: s0.Y}, Color: color},
			{Location: Point{X: d1.X, Y: d0.Y}, Texture: UPoint{X: s1.X, Y: s0.Y}, Color: color},
			{Location: Point{X: d0.X, Y: d1.Y}, Texture: UPoint{X: s0.X, Y: s1.Y}, Color: color},
			{Location: Point{X: d1.X, Y: d1.Y}, Texture: UPoint{X: s1.X, Y: s1.Y}, Color: color},
		},
		Indices: quadIndices[:],
	}
}
