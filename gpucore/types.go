package gpucore

// Resource IDs
//
// These opaque IDs represent GPU resources. Each backend maintains a mapping
// between IDs and its own handles.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// BindGroupID is an opaque handle to a bind group (texture + sampler, or the
// default bindings used by untextured draws).
type BindGroupID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// DefaultCopyAlignment is the WebGPU COPY_BUFFER_ALIGNMENT in bytes.
const DefaultCopyAlignment = 4

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be written by WriteBuffer.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 4

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6
)

// Has reports whether all bits of flag are set in u.
func (u BufferUsage) Has(flag BufferUsage) bool {
	return u&flag == flag
}

// IndexFormat specifies the width of index buffer elements.
type IndexFormat uint32

// Index formats.
const (
	// IndexFormatUint16 uses 16-bit unsigned indices.
	IndexFormatUint16 IndexFormat = iota + 1

	// IndexFormatUint32 uses 32-bit unsigned indices.
	IndexFormatUint32
)

// String returns the string representation of the IndexFormat.
func (f IndexFormat) String() string {
	switch f {
	case IndexFormatUint16:
		return "Uint16"
	case IndexFormatUint32:
		return "Uint32"
	default:
		return "Unknown"
	}
}

// ScissorRect is a scissor rectangle in framebuffer pixels.
type ScissorRect struct {
	X, Y          uint32
	Width, Height uint32
}
