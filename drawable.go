package drawing

import "github.com/chewxy/math32"

// Angle is a rotation in radians.
type Angle float32

// Degrees returns an Angle of deg degrees.
func Degrees(deg float32) Angle {
	return Angle(deg * math32.Pi / 180)
}

// Radians returns an Angle of rad radians.
func Radians(rad float32) Angle {
	return Angle(rad)
}

// Radians returns a in radians.
func (a Angle) Radians() float32 {
	return float32(a)
}

// Degrees returns a in degrees.
func (a Angle) Degrees() float32 {
	return float32(a) * 180 / math32.Pi
}

// Normalized returns a wrapped into [0, 2π).
func (a Angle) Normalized() Angle {
	r := math32.Mod(float32(a), 2*math32.Pi)
	if r < 0 {
		r += 2 * math32.Pi
	}
	return Angle(r)
}

// Transform is the per-draw placement applied by the shader. Unset parts
// leave the corresponding shader flag clear.
type Transform struct {
	Translation Point

	rotation Angle
	rotated  bool

	scale  PointF
	scaled bool

	opacity    float32
	hasOpacity bool
}

// Rotation returns the rotation and whether one is set.
func (t Transform) Rotation() (Angle, bool) { return t.rotation, t.rotated }

// Scaling returns the scale and whether one is set.
func (t Transform) Scaling() (PointF, bool) { return t.scale, t.scaled }

// Alpha returns the opacity and whether one is set.
func (t Transform) Alpha() (float32, bool) { return t.opacity, t.hasOpacity }

// Drawable pairs a drawable source (a Shape or a GlyphRun) with a Transform.
//
// Example:
//
//	r.DrawShape(drawing.NewDrawable(shape).
//	    Translate(drawing.Pt(10, 20)).
//	    Rotate(drawing.Degrees(45)).
//	    Opacity(0.5))
type Drawable[S any] struct {
	Source S
	Transform
}

// NewDrawable wraps source with an identity transform.
func NewDrawable[S any](source S) Drawable[S] {
	return Drawable[S]{Source: source}
}

// Translate returns d moved by offset.
func (d Drawable[S]) Translate(offset Point) Drawable[S] {
	d.Translation = d.Translation.Add(offset)
	return d
}

// Rotate returns d rotated by a around its translated origin.
func (d Drawable[S]) Rotate(a Angle) Drawable[S] {
	d.rotation = a
	d.rotated = true
	return d
}

// Scale returns d scaled uniformly by s.
func (d Drawable[S]) Scale(s float32) Drawable[S] {
	return d.ScaleXY(s, s)
}

// ScaleXY returns d scaled by x and y.
func (d Drawable[S]) ScaleXY(x, y float32) Drawable[S] {
	d.scale = PointF{X: x, Y: y}
	d.scaled = true
	return d
}

// Opacity returns d drawn with opacity o, multiplied by the renderer's
// opacity.
func (d Drawable[S]) Opacity(o float32) Drawable[S] {
	d.opacity = o
	d.hasOpacity = true
	return d
}
