package drawing

import (
	"math"
	"math/bits"
)

// Point is a signed location in unscaled pixels.
type Point struct {
	X, Y int32
}

// Pt is a convenience function to create a Point.
func Pt(x, y int32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// UPoint is an unsigned location, used for clip origins and texel coordinates.
type UPoint struct {
	X, Y uint32
}

// Signed converts p to a Point.
func (p UPoint) Signed() Point {
	return Point{X: int32(p.X), Y: int32(p.Y)}
}

// PointF is a floating-point vector, used for scale factors.
type PointF struct {
	X, Y float32
}

// Size is a width and height in unscaled pixels or texels.
type Size struct {
	Width, Height uint32
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width == 0 || s.Height == 0
}

// Rect is an unsigned axis-aligned rectangle.
type Rect struct {
	Origin UPoint
	Size   Size
}

// R is a convenience function to create a Rect.
func R(x, y, width, height uint32) Rect {
	return Rect{Origin: UPoint{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// Max returns the exclusive bottom-right corner, saturated at
// math.MaxUint32.
func (r Rect) Max() UPoint {
	return UPoint{X: addSat(r.Origin.X, r.Size.Width), Y: addSat(r.Origin.Y, r.Size.Height)}
}

func addSat(a, b uint32) uint32 {
	sum, carry := bits.Add32(a, b, 0)
	if carry != 0 {
		return math.MaxUint32
	}
	return sum
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// Intersect returns the intersection of r and s, or the zero Rect if they
// do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	x0 := max(r.Origin.X, s.Origin.X)
	y0 := max(r.Origin.Y, s.Origin.Y)
	rm, sm := r.Max(), s.Max()
	x1 := min(rm.X, sm.X)
	y1 := min(rm.Y, sm.Y)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{Origin: UPoint{X: x0, Y: y0}, Size: Size{Width: x1 - x0, Height: y1 - y0}}
}

// RectI is a signed rectangle used for draw destinations, which may lie
// partly outside the viewport.
type RectI struct {
	Origin Point
	Size   Size
}

// RI is a convenience function to create a RectI.
func RI(x, y int32, width, height uint32) RectI {
	return RectI{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// Max returns the exclusive bottom-right corner.
func (r RectI) Max() Point {
	return Point{X: r.Origin.X + int32(r.Size.Width), Y: r.Origin.Y + int32(r.Size.Height)}
}

// Translate returns r moved by offset.
func (r RectI) Translate(offset Point) RectI {
	r.Origin = r.Origin.Add(offset)
	return r
}
