package drawing

import (
	"sync/atomic"

	"github.com/gogpu/drawing/gpucore"
)

// TextureID identifies a texture. The zero value means "no texture".
type TextureID uint64

// FontID identifies a loaded font face. The zero value means "no font".
type FontID uint64

// IDAllocator hands out texture and font ids.
//
// An application owns one allocator and passes it to whatever creates
// textures and fonts, so that ids are unique within that application and
// deterministic in tests. IDAllocator is safe for concurrent use.
type IDAllocator struct {
	textures atomic.Uint64
	fonts    atomic.Uint64
}

// NewIDAllocator creates an allocator whose first ids are 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NextTexture returns a new TextureID.
func (a *IDAllocator) NextTexture() TextureID {
	return TextureID(a.textures.Add(1))
}

// NextFont returns a new FontID.
func (a *IDAllocator) NextFont() FontID {
	return FontID(a.fonts.Add(1))
}

// TextureSource is a texture that can be drawn.
type TextureSource interface {
	// ID returns the texture's id. Two sources with the same id must share
	// one bind group for the duration of a frame.
	ID() TextureID

	// Size returns the texture size in texels.
	Size() Size

	// IsMask reports whether the texture is an alpha mask tinted by the
	// vertex color.
	IsMask() bool

	// BindGroup returns the bind group that samples the texture. It is
	// called at most once per texture per frame.
	BindGroup(g *Graphics) gpucore.BindGroupID
}

// BoundTexture is a TextureSource over an existing bind group.
type BoundTexture struct {
	id        TextureID
	size      Size
	mask      bool
	bindGroup gpucore.BindGroupID
}

// NewBoundTexture creates a color texture with an id from ids.
func NewBoundTexture(ids *IDAllocator, size Size, bindGroup gpucore.BindGroupID) *BoundTexture {
	return &BoundTexture{
		id:        ids.NextTexture(),
		size:      size,
		bindGroup: bindGroup,
	}
}

// NewMaskTexture creates an alpha mask texture with an id from ids.
func NewMaskTexture(ids *IDAllocator, size Size, bindGroup gpucore.BindGroupID) *BoundTexture {
	t := NewBoundTexture(ids, size, bindGroup)
	t.mask = true
	return t
}

// ID implements TextureSource.
func (t *BoundTexture) ID() TextureID { return t.id }

// Size implements TextureSource.
func (t *BoundTexture) Size() Size { return t.size }

// IsMask implements TextureSource.
func (t *BoundTexture) IsMask() bool { return t.mask }

// BindGroup implements TextureSource.
func (t *BoundTexture) BindGroup(*Graphics) gpucore.BindGroupID { return t.bindGroup }

var _ TextureSource = (*BoundTexture)(nil)
