package buffer

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/drawing/backend/memory"
	"github.com/gogpu/drawing/gpucore"
)

func newIndexBuffer(t *testing.T, dev gpucore.Device, threshold int) *Diffable[uint32] {
	t.Helper()
	b, err := New[uint32](dev, Uint32Codec{}, Options{
		Label:             "indices",
		Usage:             gpucore.BufferUsageIndex,
		CoalesceThreshold: threshold,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(b.Destroy)
	return b
}

func readUint32s(t *testing.T, dev *memory.Device, id gpucore.BufferID, n int) []uint32 {
	t.Helper()
	raw, err := dev.ReadBuffer(id, 0, uint64(n)*4)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func seq(from, to uint32) []uint32 {
	out := make([]uint32, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

func TestNewInvalidOptions(t *testing.T) {
	dev := memory.NewDevice()

	tests := []struct {
		name string
		opts Options
	}{
		{"alignment not power of two", Options{Alignment: 6}},
		{"negative threshold", Options{CoalesceThreshold: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New[uint32](dev, Uint32Codec{}, tt.opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("New() error = %v, want ErrInvalidOptions", err)
			}
		})
	}

	if _, err := New[uint32](nil, Uint32Codec{}, Options{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("New(nil device) error = %v, want ErrInvalidOptions", err)
	}
	if _, err := New[uint32](dev, nil, Options{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("New(nil codec) error = %v, want ErrInvalidOptions", err)
	}
}

func TestUpdateFirstUploadAllocates(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	if b.ID() != gpucore.InvalidID {
		t.Fatalf("ID() before Update = %d, want InvalidID", b.ID())
	}

	contents := seq(1, 8)
	if err := b.Update(contents); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	st := b.Stats()
	if !st.Reallocated || st.Runs != 1 || st.BytesWritten != 32 {
		t.Errorf("Stats() = %+v, want reallocated single 32-byte write", st)
	}
	if got := dev.Buffer(b.ID()); !got.Usage.Has(gpucore.BufferUsageIndex | gpucore.BufferUsageCopyDst) {
		t.Errorf("Usage = %v, want index|copy-dst", got.Usage)
	}
	if got := readUint32s(t, dev, b.ID(), 8); !equalSlices(got, contents) {
		t.Errorf("device contents = %v, want %v", got, contents)
	}
	if b.Len() != 8 || b.Capacity() != 8 {
		t.Errorf("Len() = %d, Capacity() = %d, want 8, 8", b.Len(), b.Capacity())
	}
}

func TestUpdateIdempotent(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	contents := seq(1, 8)
	if err := b.Update(contents); err != nil {
		t.Fatal(err)
	}
	dev.ResetStats()

	if err := b.Update(seq(1, 8)); err != nil {
		t.Fatal(err)
	}
	if n := len(dev.Writes()); n != 0 {
		t.Errorf("identical update issued %d writes, want 0", n)
	}
	if st := b.Stats(); st != (Stats{}) {
		t.Errorf("Stats() = %+v, want zero", st)
	}
}

func TestUpdateSingleChangedElement(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	if err := b.Update(seq(1, 8)); err != nil {
		t.Fatal(err)
	}
	id := b.ID()
	dev.ResetStats()

	next := []uint32{1, 2, 9, 4, 5, 6, 7, 8}
	if err := b.Update(next); err != nil {
		t.Fatal(err)
	}

	writes := dev.Writes()
	if len(writes) != 1 {
		t.Fatalf("writes = %+v, want exactly one", writes)
	}
	if writes[0].Offset != 8 || writes[0].Size != 4 {
		t.Errorf("write = %+v, want offset 8 size 4", writes[0])
	}
	if b.ID() != id {
		t.Errorf("buffer was reallocated")
	}
	if got := readUint32s(t, dev, id, 8); !equalSlices(got, next) {
		t.Errorf("device contents = %v, want %v", got, next)
	}
}

func TestUpdateGrowReallocates(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	if err := b.Update(seq(1, 8)); err != nil {
		t.Fatal(err)
	}
	old := b.ID()
	dev.ResetStats()

	grown := seq(1, 20)
	if err := b.Update(grown); err != nil {
		t.Fatal(err)
	}

	if b.ID() == old {
		t.Error("ID() unchanged after growing, want new buffer")
	}
	if dev.Destroyed() != 1 || dev.Created() != 1 {
		t.Errorf("Created() = %d, Destroyed() = %d, want 1, 1", dev.Created(), dev.Destroyed())
	}
	if b.Capacity() != 20 {
		t.Errorf("Capacity() = %d, want 20", b.Capacity())
	}
	if got := readUint32s(t, dev, b.ID(), 20); !equalSlices(got, grown) {
		t.Errorf("device contents = %v, want %v", got, grown)
	}
}

func TestUpdateShrinkKeepsBuffer(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	if err := b.Update(seq(1, 8)); err != nil {
		t.Fatal(err)
	}
	id := b.ID()

	if err := b.Update([]uint32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if b.ID() != id || b.Capacity() != 8 {
		t.Errorf("shrinking reallocated: ID %d -> %d, Capacity() = %d", id, b.ID(), b.Capacity())
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if !equalSlices(b.Data(), []uint32{1, 2, 3}) {
		t.Errorf("Data() = %v, want [1 2 3]", b.Data())
	}

	// Growing back within capacity diffs against what the GPU still holds.
	dev.ResetStats()
	if err := b.Update(seq(1, 8)); err != nil {
		t.Fatal(err)
	}
	if n := len(dev.Writes()); n != 0 {
		t.Errorf("regrow within capacity issued %d writes, want 0", n)
	}
}

func TestUpdateCoalescing(t *testing.T) {
	base := seq(0, 63)

	tests := []struct {
		name      string
		threshold int
		changed   []int
		wantRuns  int
		wantBytes int
	}{
		{"adjacent", 16, []int{3, 4}, 1, 8},
		{"bridged gap", 16, []int{0, 17}, 1, 72},
		{"gap above threshold", 16, []int{0, 18}, 2, 8},
		{"no bridging", 0, []int{0, 2}, 2, 8},
		{"zero threshold adjacent", 0, []int{5, 6, 7}, 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := memory.NewDevice()
			b := newIndexBuffer(t, dev, tt.threshold)
			if err := b.Update(base); err != nil {
				t.Fatal(err)
			}

			next := append([]uint32(nil), base...)
			for _, i := range tt.changed {
				next[i] += 1000
			}
			if err := b.Update(next); err != nil {
				t.Fatal(err)
			}

			st := b.Stats()
			if st.Runs != tt.wantRuns || st.BytesWritten != tt.wantBytes {
				t.Errorf("Stats() = %+v, want %d runs, %d bytes", st, tt.wantRuns, tt.wantBytes)
			}
			if got := readUint32s(t, dev, b.ID(), len(next)); !equalSlices(got, next) {
				t.Errorf("device contents differ from contents")
			}
		})
	}
}

func TestUpdateUint16AlignmentNudge(t *testing.T) {
	dev := memory.NewDevice()
	b, err := New[uint16](dev, Uint16Codec{}, DefaultOptions("u16", gpucore.BufferUsageIndex))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Destroy()

	if err := b.Update([]uint16{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if got := dev.Buffer(b.ID()); len(got.Data) != 12 {
		t.Fatalf("physical size = %d, want 12 (10 rounded up)", len(got.Data))
	}
	dev.ResetStats()

	// Element 1 lives at bytes [2, 4): the write is widened down to 0.
	if err := b.Update([]uint16{1, 7, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	writes := dev.Writes()
	if len(writes) != 1 || writes[0].Offset != 0 || writes[0].Size != 4 {
		t.Errorf("writes = %+v, want one 4-byte write at 0", writes)
	}

	// Element 4 lives at bytes [8, 10): the write is widened into padding.
	dev.ResetStats()
	if err := b.Update([]uint16{1, 7, 3, 4, 9}); err != nil {
		t.Fatal(err)
	}
	writes = dev.Writes()
	if len(writes) != 1 || writes[0].Offset != 8 || writes[0].Size != 4 {
		t.Errorf("writes = %+v, want one 4-byte write at 8", writes)
	}
	if err := dev.Err(); err != nil {
		t.Errorf("device recorded violation: %v", err)
	}

	raw, _ := dev.ReadBuffer(b.ID(), 0, 10)
	want := []uint16{1, 7, 3, 4, 9}
	for i, w := range want {
		if got := binary.LittleEndian.Uint16(raw[i*2:]); got != w {
			t.Errorf("element %d = %d, want %d", i, got, w)
		}
	}
}

func TestUpdateUnalignableRunReallocates(t *testing.T) {
	dev := memory.NewDevice()
	b, err := New[byte](dev, ByteCodec{}, Options{Label: "bytes", Alignment: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Destroy()

	contents := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if err := b.Update(contents); err != nil {
		t.Fatal(err)
	}
	old := b.ID()

	// Byte 5 would need widening by five elements to reach offset 0.
	next := append([]byte(nil), contents...)
	next[5] = 99
	if err := b.Update(next); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !b.Stats().Reallocated {
		t.Errorf("Stats() = %+v, want reallocation", b.Stats())
	}
	if b.ID() == old {
		t.Error("ID() unchanged, want new buffer")
	}
	raw, _ := dev.ReadBuffer(b.ID(), 0, 16)
	if !equalSlices(raw, next) {
		t.Errorf("device contents = %v, want %v", raw, next)
	}
	if err := dev.Err(); err != nil {
		t.Errorf("device recorded violation: %v", err)
	}
}

func TestUpdateEmpty(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, DefaultCoalesceThreshold)

	if err := b.Update(nil); err != nil {
		t.Fatal(err)
	}
	if dev.Created() != 0 || len(dev.Writes()) != 0 {
		t.Errorf("empty update caused GPU traffic")
	}

	if err := b.Update(seq(1, 4)); err != nil {
		t.Fatal(err)
	}
	dev.ResetStats()
	if err := b.Update([]uint32{}); err != nil {
		t.Fatal(err)
	}
	if len(dev.Writes()) != 0 {
		t.Errorf("empty update issued writes")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestUpdateRoundTripSequence(t *testing.T) {
	dev := memory.NewDevice()
	b := newIndexBuffer(t, dev, 2)

	frames := [][]uint32{
		seq(0, 9),
		{0, 1, 2, 3, 40, 5, 6, 7, 80, 9},
		{0, 1, 2},
		seq(100, 140),
		{100, 101, 7},
		seq(100, 140),
		{},
		{5, 5, 5, 5, 5, 5},
	}
	for i, frame := range frames {
		if err := b.Update(frame); err != nil {
			t.Fatalf("frame %d: Update() error = %v", i, err)
		}
		if !equalSlices(b.Data(), frame) {
			t.Errorf("frame %d: Data() = %v, want %v", i, b.Data(), frame)
		}
		if len(frame) == 0 {
			continue
		}
		if got := readUint32s(t, dev, b.ID(), len(frame)); !equalSlices(got, frame) {
			t.Errorf("frame %d: device = %v, want %v", i, got, frame)
		}
	}
	if err := dev.Err(); err != nil {
		t.Errorf("device recorded violation: %v", err)
	}
}

func TestDestroy(t *testing.T) {
	dev := memory.NewDevice()
	b, err := New[uint32](dev, Uint32Codec{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Update(seq(1, 4)); err != nil {
		t.Fatal(err)
	}

	b.Destroy()
	b.Destroy()

	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	if err := b.Update(seq(1, 4)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Update() after Destroy error = %v, want ErrDestroyed", err)
	}
}

type failingDevice struct {
	*memory.Device
}

var errOutOfMemory = errors.New("out of memory")

func (failingDevice) CreateBuffer(string, uint64, gpucore.BufferUsage) (gpucore.BufferID, error) {
	return gpucore.InvalidID, errOutOfMemory
}

func TestUpdateCreateFailure(t *testing.T) {
	b, err := New[uint32](failingDevice{memory.NewDevice()}, Uint32Codec{}, Options{Label: "v"})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Update(seq(1, 4)); !errors.Is(err, errOutOfMemory) {
		t.Errorf("Update() error = %v, want wrapped errOutOfMemory", err)
	}
	if b.ID() != gpucore.InvalidID || b.Len() != 0 {
		t.Errorf("failed create left state: ID %d, Len %d", b.ID(), b.Len())
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want uint64
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{10, 4, 12},
		{17, 16, 32},
	}
	for _, tt := range tests {
		if got := alignUp(tt.n, tt.align); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}

func BenchmarkUpdateSparse(b *testing.B) {
	dev := memory.NewDevice()
	buf, err := New[uint32](dev, Uint32Codec{}, DefaultOptions("bench", gpucore.BufferUsageIndex))
	if err != nil {
		b.Fatal(err)
	}
	contents := seq(0, 65535)
	if err := buf.Update(contents); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contents[(i*97)%len(contents)]++
		if err := buf.Update(contents); err != nil {
			b.Fatal(err)
		}
		dev.ResetStats()
	}
}
