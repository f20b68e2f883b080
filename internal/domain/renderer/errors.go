package renderer

import "errors"

var (
	// ErrRendererCreation is returned when the engine factory yields the empty handle
	ErrRendererCreation = errors.New("renderer: creation failed")

	// ErrRenderFrame is matched by every frame failure. After one, the handle
	// refuses further frames and must be destroyed.
	ErrRenderFrame = errors.New("renderer: frame failed")

	// ErrNotBound is returned when a frame is requested before Bind succeeded
	ErrNotBound = errors.New("renderer: not bound to a surface")

	// ErrAlreadyBound is returned when Bind is called twice on one handle.
	// Callers destroy and recreate instead of rebinding.
	ErrAlreadyBound = errors.New("renderer: already bound")

	// ErrDestroyed is returned by operations on a destroyed handle
	ErrDestroyed = errors.New("renderer: handle destroyed")

	// ErrInvalidSurface is returned when binding to the empty surface identifier
	ErrInvalidSurface = errors.New("renderer: invalid surface handle")
)
