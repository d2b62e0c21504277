package drawing

import (
	"fmt"
	"math"
)

// VertexCache interns vertices for one frame. Bit-identical vertices share
// one index; indices follow insertion order, which is also GPU vertex order.
type VertexCache struct {
	index    map[Vertex]uint32
	vertices []Vertex
	limit    uint64
}

// NewVertexCache creates an empty cache.
func NewVertexCache() *VertexCache {
	return &VertexCache{
		index: make(map[Vertex]uint32),
		limit: math.MaxUint32,
	}
}

// GetOrInsert returns the index of v, appending it on first sight.
func (c *VertexCache) GetOrInsert(v Vertex) (uint32, error) {
	if i, ok := c.index[v]; ok {
		return i, nil
	}
	if uint64(len(c.vertices)) >= c.limit {
		return 0, fmt.Errorf("vertex cache holds %d vertices: %w", len(c.vertices), ErrCapacityExceeded)
	}
	i := uint32(len(c.vertices))
	c.vertices = append(c.vertices, v)
	c.index[v] = i
	return i, nil
}

// Len returns the number of unique vertices.
func (c *VertexCache) Len() int {
	return len(c.vertices)
}

// Vertices returns the unique vertices in index order.
// The returned slice must not be modified.
func (c *VertexCache) Vertices() []Vertex {
	return c.vertices
}

// Reset empties the cache, keeping allocated storage.
func (c *VertexCache) Reset() {
	clear(c.index)
	c.vertices = c.vertices[:0]
}
