package drawing

import "fmt"

// OperationID identifies a custom operation registered with a Drawing.
type OperationID uint32

// RenderOperation injects custom GPU work into a Drawing's command stream.
//
// Prepare runs while recording and may create per-draw resources. Render runs
// during Drawing.Render at the operation's position in the stream, with the
// operation's clip active on rg.Clip(). Prepared values live until the next
// frame begins.
type RenderOperation[Info, Prepared any] interface {
	Prepare(info Info, g *Graphics) (Prepared, error)
	Render(prepared Prepared, opacity float32, rg *RenderingGraphics) error
}

// operationState is the type-erased view of a registered operation kept in
// the Drawing's registry.
type operationState interface {
	reset()
	render(prepared int, opacity float32, rg *RenderingGraphics) error
}

type operationSlot[Info, Prepared any] struct {
	op       RenderOperation[Info, Prepared]
	prepared []Prepared
}

func (s *operationSlot[Info, Prepared]) reset() {
	clear(s.prepared)
	s.prepared = s.prepared[:0]
}

func (s *operationSlot[Info, Prepared]) prepare(info Info, g *Graphics) (int, error) {
	p, err := s.op.Prepare(info, g)
	if err != nil {
		return 0, err
	}
	s.prepared = append(s.prepared, p)
	return len(s.prepared) - 1, nil
}

func (s *operationSlot[Info, Prepared]) render(prepared int, opacity float32, rg *RenderingGraphics) error {
	return s.op.Render(s.prepared[prepared], opacity, rg)
}

// Operation is a typed handle to an operation registered with one Drawing.
type Operation[Info any] struct {
	id      OperationID
	owner   *Drawing
	prepare func(info Info, g *Graphics) (int, error)
}

// RegisterOperation adds op to d's registry and returns the handle used to
// draw it.
func RegisterOperation[Info, Prepared any](d *Drawing, op RenderOperation[Info, Prepared]) Operation[Info] {
	slot := &operationSlot[Info, Prepared]{op: op}
	id := OperationID(len(d.operations))
	d.operations = append(d.operations, slot)
	return Operation[Info]{id: id, owner: d, prepare: slot.prepare}
}

// ID returns the operation's id within its Drawing.
func (o Operation[Info]) ID() OperationID {
	return o.id
}

// Draw prepares info and appends the operation to r's frame.
// Failures are recorded on r and returned by Renderer.End.
func (o Operation[Info]) Draw(r *Renderer, info Info) {
	if !r.usable() {
		return
	}
	if o.owner != r.d || o.prepare == nil {
		r.fail(ErrUnknownOperation)
		return
	}
	prepared, err := o.prepare(info, r.g)
	if err != nil {
		r.fail(fmt.Errorf("drawing: prepare operation %d: %w", o.id, err))
		return
	}
	if err := r.d.commands.appendCustom(r.clipIndex, o.id, prepared); err != nil {
		r.fail(err)
	}
}
