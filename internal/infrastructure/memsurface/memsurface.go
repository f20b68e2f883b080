// Package memsurface provides child surfaces backed by in-memory images.
//
// It stands in for the window system when no display is available: headless
// replays and tests bind real renderers to it and read the presented pixels back.
package memsurface

import (
	"fmt"
	"image"
	"sync"

	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/domain/surface"
	"github.com/younwookim/mythforge/internal/infrastructure/ggengine"
	"github.com/younwookim/mythforge/internal/infrastructure/handles"
)

// Surface is an image-backed child surface
type Surface struct {
	factory *Factory
	id      native.Handle
	parent  native.Handle
	bounds  native.Rect

	mu        sync.Mutex
	img       *image.RGBA
	presents  int
	destroyed bool
}

// ID returns the surface id, or native.Empty once destroyed
func (s *Surface) ID() native.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return native.Empty
	}
	return s.id
}

// Bounds returns the rectangle the surface was created with
func (s *Surface) Bounds() native.Rect {
	return s.bounds
}

// Parent returns the host window the surface belongs to
func (s *Surface) Parent() native.Handle {
	return s.parent
}

// WritePixels replaces the image content
func (s *Surface) WritePixels(pix []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return fmt.Errorf("memsurface: surface %s destroyed", s.id)
	}
	if len(pix) != len(s.img.Pix) {
		return fmt.Errorf("memsurface: got %d bytes, surface %s needs %d", len(pix), s.id, len(s.img.Pix))
	}
	copy(s.img.Pix, pix)
	s.presents++
	return nil
}

// Snapshot returns a copy of the current content, or nil once destroyed
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil
	}
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Presents returns how many frames were written to the surface
func (s *Surface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

// Destroy releases the surface. It is idempotent.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.img = nil
	s.mu.Unlock()

	s.factory.surfaces.Unregister(s.id)
}

// Factory creates memory surfaces and resolves their ids for the render engine
type Factory struct {
	surfaces *handles.Table[*Surface]
}

var (
	_ surface.Factory   = (*Factory)(nil)
	_ ggengine.Resolver = (*Factory)(nil)
)

// NewFactory creates an empty factory
func NewFactory() *Factory {
	return &Factory{surfaces: handles.NewTable[*Surface]()}
}

// CreateSurface allocates a surface of bounds' size
func (f *Factory) CreateSurface(parent native.Handle, bounds native.Rect) (surface.Surface, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: %s", surface.ErrInvalidDimensions, bounds)
	}
	if parent.IsEmpty() {
		return nil, fmt.Errorf("%w: no parent window", surface.ErrSurfaceCreation)
	}
	s := &Surface{
		factory: f,
		parent:  parent,
		bounds:  bounds,
		img:     image.NewRGBA(image.Rect(0, 0, bounds.Width, bounds.Height)),
	}
	s.id = f.surfaces.Register(s)
	return s, nil
}

// Resolve implements ggengine.Resolver
func (f *Factory) Resolve(id native.Handle) (ggengine.Target, bool) {
	s, ok := f.surfaces.Lookup(id)
	if !ok {
		return nil, false
	}
	return s, true
}

// Lookup returns the live surface with id
func (f *Factory) Lookup(id native.Handle) (*Surface, bool) {
	return f.surfaces.Lookup(id)
}

// Live returns the number of surfaces not yet destroyed
func (f *Factory) Live() int {
	return f.surfaces.Count()
}
