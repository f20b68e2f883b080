// Package ebitensurface creates the editor's child surfaces as offscreen
// ebiten images parented to the host window.
//
// The host composites every live surface onto the screen at its bounds. A
// surface is never resized: the binding controller destroys it and asks for a
// new one, and Destroy deallocates the GPU image immediately rather than
// waiting for the garbage collector.
package ebitensurface

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/domain/surface"
	"github.com/younwookim/mythforge/internal/infrastructure/ggengine"
	"github.com/younwookim/mythforge/internal/infrastructure/handles"
)

// Surface is a child surface backed by an *ebiten.Image
type Surface struct {
	factory *Factory
	id      native.Handle
	bounds  native.Rect

	mu        sync.Mutex
	image     *ebiten.Image
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

// Bounds returns the surface rectangle in host window coordinates
func (s *Surface) Bounds() native.Rect {
	return s.bounds
}

// WritePixels uploads a full frame of premultiplied RGBA pixels, the layout
// both gg and ebiten.Image.WritePixels use
func (s *Surface) WritePixels(pix []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return fmt.Errorf("ebitensurface: surface %s destroyed", s.id)
	}
	if want := 4 * s.bounds.Width * s.bounds.Height; len(pix) != want {
		return fmt.Errorf("ebitensurface: got %d bytes, surface %s needs %d", len(pix), s.id, want)
	}
	s.image.WritePixels(pix)
	return nil
}

// Destroy deallocates the image. It is idempotent.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.image.Deallocate()
	s.image = nil
	s.mu.Unlock()

	s.factory.surfaces.Unregister(s.id)
}

func (s *Surface) drawTo(screen *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(s.bounds.X), float64(s.bounds.Y))
	screen.DrawImage(s.image, op)
}

// Factory creates surfaces for one host window
type Factory struct {
	host     native.Handle
	surfaces *handles.Table[*Surface]
}

var (
	_ surface.Factory   = (*Factory)(nil)
	_ ggengine.Resolver = (*Factory)(nil)
)

// NewFactory creates a factory for surfaces parented to host
func NewFactory(host native.Handle) *Factory {
	return &Factory{
		host:     host,
		surfaces: handles.NewTable[*Surface](),
	}
}

// CreateSurface allocates an offscreen image of bounds' size
func (f *Factory) CreateSurface(parent native.Handle, bounds native.Rect) (surface.Surface, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: %s", surface.ErrInvalidDimensions, bounds)
	}
	if parent != f.host {
		return nil, fmt.Errorf("%w: parent %s is not host window %s", surface.ErrSurfaceCreation, parent, f.host)
	}
	s := &Surface{
		factory: f,
		bounds:  bounds,
		image:   ebiten.NewImage(bounds.Width, bounds.Height),
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

// Composite draws every live surface onto screen at its bounds
func (f *Factory) Composite(screen *ebiten.Image) {
	f.surfaces.Each(func(_ native.Handle, s *Surface) {
		s.drawTo(screen)
	})
}

// Live returns the number of surfaces not yet destroyed
func (f *Factory) Live() int {
	return f.surfaces.Count()
}
