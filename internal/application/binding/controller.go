// Package binding keeps a native renderer bound to a child surface of the host
// window for as long as the window lives.
//
// The Controller reacts to four host events: surface ready, surface resized,
// frame tick and closing. It owns at most one surface/renderer pair, subscribes
// to the frame tick only while that pair is bound, and releases renderer before
// surface on every path out of the bound state.
//
// All methods must be called from the goroutine that delivers host events.
package binding

import (
	"github.com/google/uuid"
	"github.com/younwookim/mythforge/internal/application/state"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/domain/renderer"
	"github.com/younwookim/mythforge/internal/domain/surface"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
)

// Options configures a Controller. The zero value is usable.
type Options struct {
	FailurePolicy FailurePolicy
	Logger        diagnostics.Logger

	// NewBindingID labels each successful bind in logs and Stats.
	// Defaults to uuid.NewString.
	NewBindingID func() string
}

// Stats counts lifecycle activity since the controller was created
type Stats struct {
	Binds         int // successful binds, including rebinds
	Rebinds       int // binds that replaced a previous pair
	BindFailures  int // ready/resize events that ended Idle
	Frames        int // frames rendered successfully
	FrameFailures int
	LastBindingID string
	LastBoundRect native.Rect
}

// Controller is the surface binding controller
type Controller struct {
	surfaces surface.Factory
	engine   renderer.Engine
	ticks    TickSource
	log      diagnostics.Logger
	policy   FailurePolicy
	newID    func() string

	state      state.BindingState
	host       native.Handle
	surface    surface.Surface
	renderer   *renderer.Handle
	subscribed bool
	bindingID  string

	busy    bool
	pending []func()

	stats Stats
}

var _ EventTarget = (*Controller)(nil)

// NewController creates an Idle controller
func NewController(surfaces surface.Factory, engine renderer.Engine, ticks TickSource, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = diagnostics.NewNopLogger()
	}
	if opts.NewBindingID == nil {
		opts.NewBindingID = uuid.NewString
	}
	return &Controller{
		surfaces: surfaces,
		engine:   engine,
		ticks:    ticks,
		log:      opts.Logger,
		policy:   opts.FailurePolicy,
		newID:    opts.NewBindingID,
		state:    state.StateIdle,
	}
}

// OnSurfaceReady binds a new surface of width×height at the origin of host.
// Called while Bound it rebinds, so two pairs never coexist.
func (c *Controller) OnSurfaceReady(host native.Handle, width, height int) {
	c.run(func() {
		if !c.state.Accepting() {
			return
		}
		c.host = host
		rebind := c.holdsResources()
		c.teardown("surface ready")
		c.bind(width, height, rebind)
	})
}

// OnSurfaceResized destroys the current pair and binds a new one at the new size.
// The render engine has no resize primitive; resize is always destroy-and-recreate.
func (c *Controller) OnSurfaceResized(width, height int) {
	c.run(func() {
		if !c.state.Accepting() {
			return
		}
		if c.host.IsEmpty() {
			c.log.Warnf("Resize to %dx%d before the surface was ready; ignored", width, height)
			return
		}
		rebind := c.holdsResources()
		c.teardown("surface resized")
		c.bind(width, height, rebind)
	})
}

// OnFrameTick renders one frame when Bound. Ticks delivered during another
// transition are dropped.
func (c *Controller) OnFrameTick() {
	if c.busy || c.state != state.StateBound {
		return
	}
	c.run(c.renderFrame)
}

// OnClosing releases everything and makes the controller inert
func (c *Controller) OnClosing() {
	c.run(func() {
		if c.state == state.StateClosed {
			return
		}
		if c.holdsResources() {
			c.log.Infof("Closing renderer and releasing resources...")
		}
		c.teardown("closing")
		c.state = state.StateClosed
	})
}

// run executes one transition. A transition requested while another is
// executing is queued and runs after it, in arrival order.
func (c *Controller) run(fn func()) {
	if c.busy {
		c.pending = append(c.pending, fn)
		return
	}
	c.busy = true
	defer func() {
		c.busy = false
		c.pending = nil
	}()

	fn()
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		next()
	}
}

func (c *Controller) holdsResources() bool {
	return c.subscribed || c.renderer != nil || c.surface != nil
}

func (c *Controller) bind(width, height int, rebind bool) {
	bounds := native.Rect{Width: width, Height: height}
	if c.host.IsEmpty() {
		c.bindFailed("Error initializing renderer: host window handle is empty")
		return
	}
	if !bounds.Valid() {
		c.bindFailed("Error initializing renderer: %v (%s)", surface.ErrInvalidDimensions, bounds)
		return
	}

	surf, err := c.surfaces.CreateSurface(c.host, bounds)
	if err != nil {
		c.bindFailed("Error initializing renderer: %v", err)
		return
	}

	r, err := renderer.Create(c.engine)
	if err != nil {
		surf.Destroy()
		c.bindFailed("Error initializing renderer: %v", err)
		return
	}

	if err := r.Bind(surf.ID()); err != nil {
		r.Destroy()
		surf.Destroy()
		c.bindFailed("Error initializing renderer: %v", err)
		return
	}

	c.surface = surf
	c.renderer = r
	c.bindingID = c.newID()
	c.ticks.Subscribe(c.OnFrameTick)
	c.subscribed = true
	c.state = state.StateBound

	c.stats.Binds++
	if rebind {
		c.stats.Rebinds++
	}
	c.stats.LastBindingID = c.bindingID
	c.stats.LastBoundRect = bounds
	c.log.Infof("Renderer %s bound to surface %s (%s, binding %s)", r.Native(), surf.ID(), bounds, c.bindingID)
}

func (c *Controller) bindFailed(format string, args ...any) {
	c.stats.BindFailures++
	c.log.Errorf(format, args...)
}

func (c *Controller) renderFrame() {
	if c.state != state.StateBound {
		return
	}
	err := c.renderer.RenderFrame()
	if err == nil {
		c.stats.Frames++
		return
	}

	c.stats.FrameFailures++
	c.log.Errorf("Render error on binding %s: %v", c.bindingID, err)

	c.unsubscribe()
	c.renderer.Destroy()
	c.renderer = nil
	if c.policy == TeardownAll {
		c.surface.Destroy()
		c.surface = nil
	}
	c.bindingID = ""
	c.state = state.StateIdle
}

func (c *Controller) unsubscribe() {
	if !c.subscribed {
		return
	}
	c.ticks.Unsubscribe()
	c.subscribed = false
}

// teardown releases the current pair: tick, then renderer, then surface
func (c *Controller) teardown(reason string) {
	if !c.holdsResources() {
		return
	}
	c.unsubscribe()
	if c.renderer != nil {
		c.log.Debugf("Destroying renderer %s (%s)", c.renderer.Native(), reason)
		c.renderer.Destroy()
		c.renderer = nil
	}
	if c.surface != nil {
		c.log.Debugf("Destroying surface %s (%s)", c.surface.ID(), reason)
		c.surface.Destroy()
		c.surface = nil
	}
	c.bindingID = ""
	if c.state == state.StateBound {
		c.state = state.StateIdle
	}
}

// State returns the current binding state
func (c *Controller) State() state.BindingState {
	return c.state
}

// Surface returns the owned surface, or nil
func (c *Controller) Surface() surface.Surface {
	return c.surface
}

// Renderer returns the owned renderer handle, or nil
func (c *Controller) Renderer() *renderer.Handle {
	return c.renderer
}

// Subscribed reports whether the frame tick subscription is active
func (c *Controller) Subscribed() bool {
	return c.subscribed
}

// BindingID returns the id of the live binding, or "" when not Bound
func (c *Controller) BindingID() string {
	return c.bindingID
}

// Stats returns a snapshot of the lifecycle counters
func (c *Controller) Stats() Stats {
	return c.stats
}
