package drawing

import (
	"testing"

	"github.com/gogpu/drawing/backend/memory"
	"github.com/gogpu/drawing/buffer"
	"github.com/gogpu/drawing/gpucore"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.copyAlignment != 0 {
		t.Errorf("copyAlignment = %d, want 0 (device default)", o.copyAlignment)
	}
	if o.coalesceThreshold != buffer.DefaultCoalesceThreshold {
		t.Errorf("coalesceThreshold = %d, want %d", o.coalesceThreshold, buffer.DefaultCoalesceThreshold)
	}
}

func TestOptionsApplied(t *testing.T) {
	d := NewDrawing(WithCopyAlignment(8), WithCoalesceThreshold(3))

	got := d.opts.bufferOptions("v", gpucore.BufferUsageVertex)
	want := buffer.Options{Label: "v", Usage: gpucore.BufferUsageVertex, Alignment: 8, CoalesceThreshold: 3}
	if got != want {
		t.Errorf("bufferOptions() = %+v, want %+v", got, want)
	}
}

func TestInvalidAlignmentFailsAtEnd(t *testing.T) {
	d := NewDrawing(WithCopyAlignment(3))
	defer d.Destroy()

	r, err := d.NewFrame(NewGraphics(memory.NewDevice(), Size{Width: 10, Height: 10}))
	if err != nil {
		t.Fatal(err)
	}
	r.DrawShape(NewDrawable(FilledRect(RI(0, 0, 1, 1), White)))
	if err := r.End(); err == nil {
		t.Error("End() error = nil, want invalid options")
	}
	if len(d.Commands()) != 0 {
		t.Errorf("failed upload kept %d commands", len(d.Commands()))
	}
}
