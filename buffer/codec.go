package buffer

import "encoding/binary"

// Codec serializes elements of type T into a fixed-size little-endian layout.
type Codec[T any] interface {
	// Size returns the encoded size of one element in bytes.
	Size() int

	// Encode writes v into dst. len(dst) is always Size().
	Encode(dst []byte, v T)
}

// Uint32Codec encodes uint32 values, e.g. 32-bit indices.
type Uint32Codec struct{}

// Size returns 4.
func (Uint32Codec) Size() int { return 4 }

// Encode writes v in little-endian order.
func (Uint32Codec) Encode(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }

// Uint16Codec encodes uint16 values, e.g. 16-bit indices.
type Uint16Codec struct{}

// Size returns 2.
func (Uint16Codec) Size() int { return 2 }

// Encode writes v in little-endian order.
func (Uint16Codec) Encode(dst []byte, v uint16) { binary.LittleEndian.PutUint16(dst, v) }

// ByteCodec encodes single bytes.
type ByteCodec struct{}

// Size returns 1.
func (ByteCodec) Size() int { return 1 }

// Encode writes v.
func (ByteCodec) Encode(dst []byte, v byte) { dst[0] = v }
