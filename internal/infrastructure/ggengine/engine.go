// Package ggengine is the render engine behind renderer.Engine, implemented on
// the gg 2D rasterizer.
//
// Each renderer owns a gg.Context sized to the surface it is bound to. A frame
// clears to the configured color, draws a sweeping frame marker and uploads
// the pixels to the surface. The engine never resizes a context: a surface
// whose size changed is reported as lost and the renderer must be recreated.
package ggengine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/handles"
)

// Common errors returned by Engine operations
var (
	// ErrUnknownRenderer is returned for handles the engine did not create or already destroyed
	ErrUnknownRenderer = errors.New("ggengine: unknown renderer")

	// ErrUnknownSurface is returned when a surface id does not resolve to a target
	ErrUnknownSurface = errors.New("ggengine: unknown surface")

	// ErrNotInitialized is returned when rendering with a renderer that was never bound
	ErrNotInitialized = errors.New("ggengine: renderer not initialized")

	// ErrAlreadyInitialized is returned when a renderer is bound twice
	ErrAlreadyInitialized = errors.New("ggengine: renderer already initialized")

	// ErrSurfaceLost is returned when the bound surface was destroyed or changed size
	ErrSurfaceLost = errors.New("ggengine: surface lost")
)

// Target is a surface the engine can present into
type Target interface {
	Bounds() native.Rect
	// WritePixels replaces the surface content with premultiplied RGBA pixels,
	// 4 bytes per pixel, row-major. gg pixmaps are already in this layout.
	WritePixels(pix []byte) error
}

// Resolver turns a native surface id into a Target
type Resolver interface {
	Resolve(id native.Handle) (Target, bool)
}

// Config configures an Engine
type Config struct {
	ClearColor color.Color
	// MaxRenderers caps live renderers; CreateRenderer yields native.Empty beyond it. 0 means no cap.
	MaxRenderers int
	Logger       diagnostics.Logger
}

// DefaultClearColor is the editor's background blue
var DefaultClearColor = color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff}

type rendererState struct {
	surface native.Handle
	bounds  native.Rect
	ctx     *gg.Context
	frame   int
}

// Engine implements renderer.Engine
type Engine struct {
	resolver  Resolver
	clear     gg.RGBA
	max       int
	log       diagnostics.Logger
	renderers *handles.Table[*rendererState]

	// flush defaults to (*gg.Context).FlushGPU
	flush func(*gg.Context) error
}

// New creates an engine resolving surfaces through resolver
func New(resolver Resolver, cfg Config) *Engine {
	if cfg.ClearColor == nil {
		cfg.ClearColor = DefaultClearColor
	}
	if cfg.Logger == nil {
		cfg.Logger = diagnostics.NewNopLogger()
	}
	return &Engine{
		resolver:  resolver,
		clear:     gg.FromColor(cfg.ClearColor),
		max:       cfg.MaxRenderers,
		log:       cfg.Logger,
		renderers: handles.NewTable[*rendererState](),
		flush:     (*gg.Context).FlushGPU,
	}
}

// CreateRenderer allocates a renderer, or returns native.Empty when the cap is reached
func (e *Engine) CreateRenderer() native.Handle {
	if e.max > 0 && e.renderers.Count() >= e.max {
		e.log.Warnf("Renderer limit reached (%d live)", e.max)
		return native.Empty
	}
	return e.renderers.Register(&rendererState{})
}

// InitializeRenderer binds r to a surface and allocates its drawing context
func (e *Engine) InitializeRenderer(r, surface native.Handle) error {
	rs, ok := e.renderers.Lookup(r)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRenderer, r)
	}
	if rs.ctx != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, r)
	}
	target, ok := e.resolver.Resolve(surface)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSurface, surface)
	}
	bounds := target.Bounds()
	if !bounds.Valid() {
		return fmt.Errorf("ggengine: surface %s has invalid bounds %s", surface, bounds)
	}

	rs.surface = surface
	rs.bounds = bounds
	rs.ctx = gg.NewContext(bounds.Width, bounds.Height)
	e.log.Debugf("Renderer %s initialized on surface %s (%s)", r, surface, bounds)
	return nil
}

// RenderFrame draws and presents one frame
func (e *Engine) RenderFrame(r native.Handle) error {
	rs, ok := e.renderers.Lookup(r)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRenderer, r)
	}
	if rs.ctx == nil {
		return fmt.Errorf("%w: %s", ErrNotInitialized, r)
	}
	target, ok := e.resolver.Resolve(rs.surface)
	if !ok {
		return fmt.Errorf("%w: surface %s destroyed", ErrSurfaceLost, rs.surface)
	}
	if b := target.Bounds(); b.Width != rs.bounds.Width || b.Height != rs.bounds.Height {
		return fmt.Errorf("%w: surface %s is %s, renderer expects %s", ErrSurfaceLost, rs.surface, b, rs.bounds)
	}

	if err := e.draw(rs); err != nil {
		return err
	}
	if err := target.WritePixels(rs.ctx.ResizeTarget().Data()); err != nil {
		return fmt.Errorf("ggengine: present to surface %s: %w", rs.surface, err)
	}
	rs.frame++
	return nil
}

func (e *Engine) draw(rs *rendererState) error {
	dc := rs.ctx
	h := float64(rs.bounds.Height)

	dc.ClearWithColor(e.clear)

	// frame marker: a thin bar sweeping left to right, one pixel per frame
	const barWidth = 4.0
	x := float64(rs.frame % rs.bounds.Width)
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawRectangle(x, 0, barWidth, h)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("ggengine: fill frame marker: %w", err)
	}

	// no-op unless a gg accelerator is registered
	if err := e.flush(dc); err != nil {
		return fmt.Errorf("ggengine: flush frame: %w", err)
	}
	return nil
}

// DestroyRenderer releases r. Unknown handles are ignored.
func (e *Engine) DestroyRenderer(r native.Handle) {
	rs, ok := e.renderers.Unregister(r)
	if !ok {
		return
	}
	if rs.ctx != nil {
		_ = rs.ctx.Close()
	}
	e.log.Debugf("Renderer %s destroyed after %d frames", r, rs.frame)
}

// Live returns the number of live renderers
func (e *Engine) Live() int {
	return e.renderers.Count()
}
