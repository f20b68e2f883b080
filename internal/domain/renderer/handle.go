// Package renderer wraps the render engine's opaque renderer objects.
//
// A Handle owns exactly one native renderer and enforces the order
// create → bind → render* → destroy. The engine itself is reached only
// through the Engine interface.
package renderer

import (
	"fmt"

	"github.com/younwookim/mythforge/internal/domain/native"
)

// Engine is the native render engine API
type Engine interface {
	// CreateRenderer returns a new renderer, or native.Empty on failure
	CreateRenderer() native.Handle

	// InitializeRenderer binds renderer r to the native surface
	InitializeRenderer(r, surface native.Handle) error

	// RenderFrame renders one frame synchronously
	RenderFrame(r native.Handle) error

	// DestroyRenderer releases r. Unknown or already released handles are ignored.
	DestroyRenderer(r native.Handle)
}

// Handle exclusively owns one native renderer
type Handle struct {
	engine Engine
	handle native.Handle
	bound  bool
	failed bool
}

// Create acquires a renderer from engine
func Create(engine Engine) (*Handle, error) {
	h := engine.CreateRenderer()
	if h.IsEmpty() {
		return nil, ErrRendererCreation
	}
	return &Handle{
		engine: engine,
		handle: h,
	}, nil
}

// Bind associates the renderer with a native surface. It succeeds at most once.
func (h *Handle) Bind(surface native.Handle) error {
	if !h.Live() {
		return ErrDestroyed
	}
	if h.bound {
		return ErrAlreadyBound
	}
	if surface.IsEmpty() {
		return ErrInvalidSurface
	}
	if err := h.engine.InitializeRenderer(h.handle, surface); err != nil {
		return fmt.Errorf("renderer %s: bind to %s: %w", h.handle, surface, err)
	}
	h.bound = true
	return nil
}

// RenderFrame issues one frame. Any engine failure invalidates the handle for
// the rest of its life; the returned error matches ErrRenderFrame.
func (h *Handle) RenderFrame() error {
	if !h.Live() {
		return ErrDestroyed
	}
	if !h.bound {
		return ErrNotBound
	}
	if h.failed {
		return fmt.Errorf("%w: renderer %s already failed", ErrRenderFrame, h.handle)
	}
	if err := h.engine.RenderFrame(h.handle); err != nil {
		h.failed = true
		return fmt.Errorf("%w: renderer %s: %w", ErrRenderFrame, h.handle, err)
	}
	return nil
}

// Destroy releases the native renderer. Calling it again is a no-op.
func (h *Handle) Destroy() {
	if h == nil || h.handle.IsEmpty() {
		return
	}
	h.engine.DestroyRenderer(h.handle)
	h.handle = native.Empty
	h.bound = false
}

// Native returns the owned identifier, or native.Empty after Destroy
func (h *Handle) Native() native.Handle {
	if h == nil {
		return native.Empty
	}
	return h.handle
}

// Bound reports whether Bind succeeded and the handle is still live
func (h *Handle) Bound() bool {
	return h != nil && h.bound
}

// Live reports whether the handle still owns a native renderer
func (h *Handle) Live() bool {
	return h != nil && !h.handle.IsEmpty()
}
