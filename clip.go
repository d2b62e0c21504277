package drawing

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/gogpu/drawing/gpucore"
)

// ClipRect is an absolute clipping rectangle in unscaled pixels.
// Its origin is also the drawing origin for everything drawn while it is
// active.
type ClipRect Rect

// Rect returns c as a Rect.
func (c ClipRect) Rect() Rect {
	return Rect(c)
}

// IsEmpty reports whether nothing can be drawn inside c.
func (c ClipRect) IsEmpty() bool {
	return c.Size.IsEmpty()
}

// ClipTo returns the clip produced by narrowing c to r, where r is relative
// to c's origin. A non-overlapping r yields the zero ClipRect, including an
// r whose absolute origin does not fit in uint32.
func (c ClipRect) ClipTo(r Rect) ClipRect {
	var cx, cy uint32
	r.Origin.X, cx = bits.Add32(r.Origin.X, c.Origin.X, 0)
	r.Origin.Y, cy = bits.Add32(r.Origin.Y, c.Origin.Y, 0)
	if cx != 0 || cy != 0 {
		return ClipRect{}
	}
	return ClipRect(Rect(c).Intersect(r))
}

// Scissor converts c to a scissor rectangle.
func (c ClipRect) Scissor() gpucore.ScissorRect {
	return gpucore.ScissorRect{
		X:      c.Origin.X,
		Y:      c.Origin.Y,
		Width:  c.Size.Width,
		Height: c.Size.Height,
	}
}

// ClipStack tracks the active clip and the clips it replaced.
//
// ClipStack is NOT safe for concurrent use.
type ClipStack struct {
	current  ClipRect
	previous []ClipRect
}

// NewClipStack creates a stack whose root clip covers a viewport of size.
func NewClipStack(size Size) *ClipStack {
	return &ClipStack{current: ClipRect{Size: size}}
}

// Push narrows the active clip to r, relative to the active clip's origin.
func (s *ClipStack) Push(r Rect) {
	s.previous = append(s.previous, s.current)
	s.current = s.current.ClipTo(r)
}

// Pop restores the clip that was active before the matching Push.
// It reports false, and changes nothing, if the stack holds only the root.
func (s *ClipStack) Pop() bool {
	n := len(s.previous)
	if n == 0 {
		Logger().Debug("drawing: clip pop on empty stack")
		return false
	}
	s.current = s.previous[n-1]
	s.previous = s.previous[:n-1]
	return true
}

// Current returns the active clip.
func (s *ClipStack) Current() ClipRect {
	return s.current
}

// Depth returns the number of pushes not yet popped.
func (s *ClipStack) Depth() int {
	return len(s.previous)
}

// Reset discards all pushed clips and makes root the active clip.
func (s *ClipStack) Reset(root ClipRect) {
	s.current = root
	s.previous = s.previous[:0]
}

// ClipTable assigns dense ids to distinct clips in first-seen order.
type ClipTable struct {
	lookup map[ClipRect]uint32
	clips  []ClipRect
	limit  uint64
}

// NewClipTable creates an empty table.
func NewClipTable() *ClipTable {
	return &ClipTable{
		lookup: make(map[ClipRect]uint32),
		limit:  math.MaxUint32,
	}
}

// Resolve returns the id of c, assigning the next id on first sight.
func (t *ClipTable) Resolve(c ClipRect) (uint32, error) {
	if id, ok := t.lookup[c]; ok {
		return id, nil
	}
	if uint64(len(t.clips)) >= t.limit {
		return 0, fmt.Errorf("clip table holds %d clips: %w", len(t.clips), ErrCapacityExceeded)
	}
	id := uint32(len(t.clips))
	t.clips = append(t.clips, c)
	t.lookup[c] = id
	return id, nil
}

// Clip returns the clip with the given id.
func (t *ClipTable) Clip(id uint32) ClipRect {
	return t.clips[id]
}

// Len returns the number of distinct clips.
func (t *ClipTable) Len() int {
	return len(t.clips)
}

// Reset empties the table and seeds root as id 0.
func (t *ClipTable) Reset(root ClipRect) {
	clear(t.lookup)
	t.clips = t.clips[:0]
	t.clips = append(t.clips, root)
	t.lookup[root] = 0
}
