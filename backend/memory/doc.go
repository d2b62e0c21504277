// Package memory provides an in-memory GPU backend for the drawing core.
//
// [Device] keeps every buffer as a byte slice, so tests and tools can read back
// exactly what a real GPU would hold after a sequence of creates and partial
// writes. It is strict: misaligned or out-of-range writes are recorded as
// contract violations and reported by [Device.Err] instead of being applied.
//
// [Pass] implements gpucore.RenderPass by logging every call, which makes the
// state changes issued by a replay observable.
//
//	dev := memory.NewDevice()
//	pass := memory.NewPass()
//	// ... record and render a drawing ...
//	fmt.Println(pass.Count(memory.CallDrawIndexed))
package memory
