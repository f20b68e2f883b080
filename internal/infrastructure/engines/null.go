package engines

import (
	"fmt"

	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/ggengine"
	"github.com/younwookim/mythforge/internal/infrastructure/handles"
)

type nullRenderer struct {
	surface native.Handle
	bounds  native.Rect
	frames  int
}

// Null is an engine that tracks renderer and surface lifetimes like the gg
// engine but never draws. It shares the gg engine's errors.
type Null struct {
	targets   ggengine.Resolver
	max       int
	log       diagnostics.Logger
	renderers *handles.Table[*nullRenderer]
}

// NewNull creates a null engine. Only cfg.MaxRenderers and cfg.Logger are used.
func NewNull(targets ggengine.Resolver, cfg ggengine.Config) *Null {
	if cfg.Logger == nil {
		cfg.Logger = diagnostics.NewNopLogger()
	}
	return &Null{
		targets:   targets,
		max:       cfg.MaxRenderers,
		log:       cfg.Logger,
		renderers: handles.NewTable[*nullRenderer](),
	}
}

func (n *Null) CreateRenderer() native.Handle {
	if n.max > 0 && n.renderers.Count() >= n.max {
		n.log.Warnf("Renderer limit reached (%d live)", n.max)
		return native.Empty
	}
	return n.renderers.Register(&nullRenderer{})
}

func (n *Null) InitializeRenderer(r, surface native.Handle) error {
	nr, ok := n.renderers.Lookup(r)
	if !ok {
		return fmt.Errorf("%w: %s", ggengine.ErrUnknownRenderer, r)
	}
	if !nr.surface.IsEmpty() {
		return fmt.Errorf("%w: %s", ggengine.ErrAlreadyInitialized, r)
	}
	target, ok := n.targets.Resolve(surface)
	if !ok {
		return fmt.Errorf("%w: %s", ggengine.ErrUnknownSurface, surface)
	}
	nr.surface = surface
	nr.bounds = target.Bounds()
	return nil
}

// RenderFrame checks the surface is still the one the renderer was bound to
func (n *Null) RenderFrame(r native.Handle) error {
	nr, ok := n.renderers.Lookup(r)
	if !ok {
		return fmt.Errorf("%w: %s", ggengine.ErrUnknownRenderer, r)
	}
	if nr.surface.IsEmpty() {
		return fmt.Errorf("%w: %s", ggengine.ErrNotInitialized, r)
	}
	target, ok := n.targets.Resolve(nr.surface)
	if !ok {
		return fmt.Errorf("%w: surface %s destroyed", ggengine.ErrSurfaceLost, nr.surface)
	}
	if b := target.Bounds(); b.Width != nr.bounds.Width || b.Height != nr.bounds.Height {
		return fmt.Errorf("%w: surface %s is %s, renderer expects %s", ggengine.ErrSurfaceLost, nr.surface, b, nr.bounds)
	}
	nr.frames++
	return nil
}

func (n *Null) DestroyRenderer(r native.Handle) {
	nr, ok := n.renderers.Unregister(r)
	if !ok {
		return
	}
	n.log.Debugf("Renderer %s destroyed after %d frames", r, nr.frames)
}

// Live returns the number of live renderers
func (n *Null) Live() int {
	return n.renderers.Count()
}
