package drawing

import (
	"encoding/binary"
	"math"
)

// PushConstantsSize is the encoded size of PushConstants in bytes.
const PushConstantsSize = 28

// Flags select the vertex and fragment shader features used by a draw.
type Flags uint32

// Shader flags.
const (
	// FlagDIPs marks locations as density-independent units. Reserved; never
	// set by this package.
	FlagDIPs Flags = 1 << 0
	// FlagScale applies PushConstants.Scale.
	FlagScale Flags = 1 << 1
	// FlagRotate applies PushConstants.Rotation.
	FlagRotate Flags = 1 << 2
	// FlagTranslate applies PushConstants.Translation.
	FlagTranslate Flags = 1 << 3
	// FlagTextured samples the bound texture.
	FlagTextured Flags = 1 << 4
	// FlagMasked treats the texture as an alpha mask tinted by vertex color.
	FlagMasked Flags = 1 << 5
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// PushConstants are the per-draw constants shared by all vertices of one
// command.
//
// Encoded layout (little endian):
//
//	offset  0: flags        uint32
//	offset  4: scale.x      float32
//	offset  8: scale.y      float32
//	offset 12: rotation     float32 (radians)
//	offset 16: opacity      float32
//	offset 20: translation.x int32
//	offset 24: translation.y int32
type PushConstants struct {
	Flags       Flags
	Scale       PointF
	Rotation    float32
	Opacity     float32
	Translation Point
}

// DefaultPushConstants returns constants for an untransformed, opaque draw.
func DefaultPushConstants() PushConstants {
	return PushConstants{
		Scale:   PointF{X: 1, Y: 1},
		Opacity: 1,
	}
}

// Equal reports whether p and q are bit-identical. Float fields compare by
// bit pattern, so NaN equals an identical NaN and 0 differs from -0.
func (p PushConstants) Equal(q PushConstants) bool {
	return p.Flags == q.Flags &&
		math.Float32bits(p.Scale.X) == math.Float32bits(q.Scale.X) &&
		math.Float32bits(p.Scale.Y) == math.Float32bits(q.Scale.Y) &&
		math.Float32bits(p.Rotation) == math.Float32bits(q.Rotation) &&
		math.Float32bits(p.Opacity) == math.Float32bits(q.Opacity) &&
		p.Translation == q.Translation
}

// normalize sets FlagTranslate exactly when the translation is non-zero.
func (p *PushConstants) normalize() {
	if p.Translation.IsZero() {
		p.Flags &^= FlagTranslate
	} else {
		p.Flags |= FlagTranslate
	}
}

// Bytes encodes p using the layout documented on PushConstants.
func (p PushConstants) Bytes() []byte {
	var b [PushConstantsSize]byte
	p.encode(b[:])
	return b[:]
}

func (p PushConstants) encode(b []byte) {
	binary.LittleEndian.PutUint32(b[0:], uint32(p.Flags))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(p.Scale.X))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(p.Scale.Y))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(p.Rotation))
	binary.LittleEndian.PutUint32(b[16:], math.Float32bits(p.Opacity))
	binary.LittleEndian.PutUint32(b[20:], uint32(p.Translation.X))
	binary.LittleEndian.PutUint32(b[24:], uint32(p.Translation.Y))
}
