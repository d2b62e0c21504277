package gpucore

// Device abstracts buffer management on a GPU backend.
//
// Implementations decide how writes are staged; the drawing core only
// requires that writes become visible to draws submitted after them.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - IDs become invalid after destruction and must not be reused
type Device interface {
	// CreateBuffer creates a GPU buffer of size bytes.
	//
	// Parameters:
	//   - label: optional debug label
	//   - size: buffer size in bytes, a multiple of CopyAlignment
	//   - usage: buffer usage flags (bitmask of BufferUsage*)
	CreateBuffer(label string, size uint64, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data into a buffer at a byte offset.
	// Both offset and len(data) must be multiples of CopyAlignment.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// CopyAlignment returns the required alignment, in bytes, of partial
	// buffer writes. Always a power of two.
	CopyAlignment() uint64
}

// RenderPass records draw state and indexed draws.
//
// A RenderPass is NOT safe for concurrent use. The pipeline bound to the pass
// must accept the vertex layout and constant block written by the drawing
// package.
type RenderPass interface {
	// SetVertexBuffer binds the vertex buffer at slot 0.
	SetVertexBuffer(id BufferID)

	// SetIndexBuffer binds the index buffer.
	SetIndexBuffer(id BufferID, format IndexFormat)

	// SetBindGroup binds the texture bind group at group index 0.
	SetBindGroup(id BindGroupID)

	// SetScissorRect restricts subsequent draws to rect.
	SetScissorRect(rect ScissorRect)

	// SetConstants uploads the per-draw constant block.
	SetConstants(data []byte)

	// DrawIndexed draws count indices starting at firstIndex.
	DrawIndexed(firstIndex, count uint32)
}
