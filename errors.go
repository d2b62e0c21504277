package drawing

import "errors"

// Errors returned by the drawing core.
var (
	// ErrCapacityExceeded is recorded when a frame needs more than
	// math.MaxUint32 vertices, indices, clips or commands. The frame is
	// discarded by Renderer.End.
	ErrCapacityExceeded = errors.New("drawing: capacity exceeded")

	// ErrInvalidIndex is recorded when a shape index does not reference one of
	// the shape's vertices. The frame is discarded by Renderer.End.
	ErrInvalidIndex = errors.New("drawing: shape index out of range")

	// ErrMissingTextureBinding is returned by Drawing.Render when a command
	// references a texture with no bind group.
	ErrMissingTextureBinding = errors.New("drawing: missing texture binding")

	// ErrFrameInProgress is returned by NewFrame while a Renderer is active.
	ErrFrameInProgress = errors.New("drawing: frame in progress")

	// ErrRendererEnded is recorded when a Renderer is used after End.
	ErrRendererEnded = errors.New("drawing: renderer ended")

	// ErrDestroyed is returned when a Drawing is used after Destroy.
	ErrDestroyed = errors.New("drawing: destroyed")

	// ErrUnknownOperation is recorded when an Operation handle is drawn on a
	// Renderer of a different Drawing.
	ErrUnknownOperation = errors.New("drawing: operation not registered with this drawing")

	// ErrNilTexture is recorded when a textured draw has no texture.
	ErrNilTexture = errors.New("drawing: nil texture")
)
