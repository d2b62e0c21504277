// Package gpucore defines the backend-neutral GPU contract used by the drawing
// core.
//
// The drawing core never talks to a graphics API directly. It allocates and
// patches buffers through a [Device] and replays recorded commands through a
// [RenderPass]. Backends translate these calls:
//
//	               +------------------+
//	               |     drawing      |
//	               | (batch + replay) |
//	               +--------+---------+
//	                        |
//	               +--------v---------+
//	               |     gpucore      |
//	               | Device/RenderPass|
//	               +--------+---------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/native  |          | backend/memory  |
//	|  (wgpu hal)     |          | (simulated GPU) |
//	+-----------------+          +-----------------+
//
// # Resource Management
//
// GPU resources are referenced by opaque IDs ([BufferID], [BindGroupID]).
// The zero value ([InvalidID]) never names a live resource. Backends keep the
// mapping between IDs and their own handles.
//
// # Alignment
//
// Partial buffer writes must start and end on [Device.CopyAlignment] byte
// boundaries. WebGPU requires 4; [DefaultCopyAlignment] carries that value.
package gpucore
