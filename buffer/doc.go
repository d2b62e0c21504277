// Package buffer keeps GPU buffers in sync with CPU-side slices using the
// smallest practical amount of upload traffic.
//
// A [Diffable] owns one GPU buffer and a shadow copy of everything it last
// uploaded. Each [Diffable.Update] compares the new contents against the
// shadow, groups changed elements into runs and writes only those runs,
// falling back to a full reallocation when the contents outgrow the buffer
// or a run cannot be aligned to the device copy alignment.
//
// Element serialization is explicit: a [Codec] writes each element into a
// little-endian byte slice. Memory layout of Go values is never uploaded
// directly.
//
// Example:
//
//	idx, err := buffer.New(device, buffer.Uint32Codec{}, buffer.Options{
//	    Label: "indices",
//	    Usage: gpucore.BufferUsageIndex | gpucore.BufferUsageCopyDst,
//	    CoalesceThreshold: buffer.DefaultCoalesceThreshold,
//	})
//	if err != nil {
//	    return err
//	}
//	defer idx.Destroy()
//
//	if err := idx.Update(indices); err != nil {
//	    return err
//	}
//	pass.DrawIndexed(0, uint32(idx.Len()))
package buffer
