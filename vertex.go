package drawing

import (
	"encoding/binary"

	"github.com/gogpu/drawing/buffer"
)

// VertexSize is the encoded size of a Vertex in bytes.
const VertexSize = 20

// Vertex is one GPU vertex.
//
// Encoded layout (little endian, 4-byte aligned):
//
//	offset  0: location.x  int32
//	offset  4: location.y  int32
//	offset  8: texture.x   uint32
//	offset 12: texture.y   uint32
//	offset 16: color       uint32 (0xRRGGBBAA)
type Vertex struct {
	Location Point
	Texture  UPoint
	Color    Color
}

// VertexCodec serializes Vertex values for upload.
type VertexCodec struct{}

// Size returns VertexSize.
func (VertexCodec) Size() int { return VertexSize }

// Encode writes v into dst using the layout documented on Vertex.
func (VertexCodec) Encode(dst []byte, v Vertex) {
	binary.LittleEndian.PutUint32(dst[0:], uint32(v.Location.X))
	binary.LittleEndian.PutUint32(dst[4:], uint32(v.Location.Y))
	binary.LittleEndian.PutUint32(dst[8:], v.Texture.X)
	binary.LittleEndian.PutUint32(dst[12:], v.Texture.Y)
	binary.LittleEndian.PutUint32(dst[16:], uint32(v.Color))
}

// IndexCodec serializes 32-bit indices.
type IndexCodec = buffer.Uint32Codec

var (
	_ buffer.Codec[Vertex] = VertexCodec{}
	_ buffer.Codec[uint32] = IndexCodec{}
)
