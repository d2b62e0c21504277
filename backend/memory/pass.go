package memory

import (
	"fmt"

	"github.com/gogpu/drawing/gpucore"
)

// CallKind identifies a recorded RenderPass call.
type CallKind int

const (
	// CallSetVertexBuffer is a SetVertexBuffer call.
	CallSetVertexBuffer CallKind = iota
	// CallSetIndexBuffer is a SetIndexBuffer call.
	CallSetIndexBuffer
	// CallSetBindGroup is a SetBindGroup call.
	CallSetBindGroup
	// CallSetScissorRect is a SetScissorRect call.
	CallSetScissorRect
	// CallSetConstants is a SetConstants call.
	CallSetConstants
	// CallDrawIndexed is a DrawIndexed call.
	CallDrawIndexed
)

// String returns the string representation of CallKind.
func (k CallKind) String() string {
	switch k {
	case CallSetVertexBuffer:
		return "SetVertexBuffer"
	case CallSetIndexBuffer:
		return "SetIndexBuffer"
	case CallSetBindGroup:
		return "SetBindGroup"
	case CallSetScissorRect:
		return "SetScissorRect"
	case CallSetConstants:
		return "SetConstants"
	case CallDrawIndexed:
		return "DrawIndexed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Call is one recorded RenderPass call. Only the fields relevant to Kind are
// set.
type Call struct {
	Kind       CallKind
	Buffer     gpucore.BufferID
	Format     gpucore.IndexFormat
	BindGroup  gpucore.BindGroupID
	Scissor    gpucore.ScissorRect
	Constants  []byte
	FirstIndex uint32
	Count      uint32
}

// Pass is a gpucore.RenderPass that logs every call.
type Pass struct {
	calls []Call
}

// NewPass creates an empty pass.
func NewPass() *Pass {
	return &Pass{}
}

// SetVertexBuffer records a vertex buffer binding.
func (p *Pass) SetVertexBuffer(id gpucore.BufferID) {
	p.calls = append(p.calls, Call{Kind: CallSetVertexBuffer, Buffer: id})
}

// SetIndexBuffer records an index buffer binding.
func (p *Pass) SetIndexBuffer(id gpucore.BufferID, format gpucore.IndexFormat) {
	p.calls = append(p.calls, Call{Kind: CallSetIndexBuffer, Buffer: id, Format: format})
}

// SetBindGroup records a bind group change.
func (p *Pass) SetBindGroup(id gpucore.BindGroupID) {
	p.calls = append(p.calls, Call{Kind: CallSetBindGroup, BindGroup: id})
}

// SetScissorRect records a scissor change.
func (p *Pass) SetScissorRect(rect gpucore.ScissorRect) {
	p.calls = append(p.calls, Call{Kind: CallSetScissorRect, Scissor: rect})
}

// SetConstants records a constant block upload. data is copied.
func (p *Pass) SetConstants(data []byte) {
	c := make([]byte, len(data))
	copy(c, data)
	p.calls = append(p.calls, Call{Kind: CallSetConstants, Constants: c})
}

// DrawIndexed records an indexed draw.
func (p *Pass) DrawIndexed(firstIndex, count uint32) {
	p.calls = append(p.calls, Call{Kind: CallDrawIndexed, FirstIndex: firstIndex, Count: count})
}

// Calls returns all recorded calls in order.
func (p *Pass) Calls() []Call {
	return p.calls
}

// Filter returns the recorded calls of the given kind, in order.
func (p *Pass) Filter(kind CallKind) []Call {
	var out []Call
	for _, c := range p.calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of recorded calls of the given kind.
func (p *Pass) Count(kind CallKind) int {
	n := 0
	for _, c := range p.calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears the call log.
func (p *Pass) Reset() {
	p.calls = p.calls[:0]
}

// Ensure Pass implements gpucore.RenderPass.
var _ gpucore.RenderPass = (*Pass)(nil)
