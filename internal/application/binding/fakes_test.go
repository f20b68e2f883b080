package binding

import (
	"errors"
	"fmt"

	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/domain/surface"
)

// world is the shared native side of a test: it hands out ids, tracks what is
// alive and records every native call in order
type world struct {
	calls         []string
	nextID        native.Handle
	liveSurfaces  map[native.Handle]*fakeSurface
	liveRenderers map[native.Handle]native.Handle // renderer -> bound surface (Empty if unbound)

	failSurface  bool
	failCreate   bool
	failBind     bool
	failRenderAt int // 1-based frame number that fails; 0 never
	frames       int

	// overlap records any moment where a creation happened while another pair was alive
	overlap bool

	onCreateSurface func()
}

func newWorld() *world {
	return &world{
		nextID:        100,
		liveSurfaces:  map[native.Handle]*fakeSurface{},
		liveRenderers: map[native.Handle]native.Handle{},
	}
}

func (w *world) id() native.Handle {
	w.nextID++
	return w.nextID
}

func (w *world) record(format string, args ...any) {
	w.calls = append(w.calls, fmt.Sprintf(format, args...))
}

// fakeSurface implements surface.Surface
type fakeSurface struct {
	w         *world
	id        native.Handle
	bounds    native.Rect
	parent    native.Handle
	destroyed int
}

func (s *fakeSurface) ID() native.Handle {
	if s.destroyed > 0 {
		return native.Empty
	}
	return s.id
}

func (s *fakeSurface) Bounds() native.Rect { return s.bounds }

func (s *fakeSurface) Destroy() {
	if s.destroyed > 0 {
		return
	}
	s.destroyed++
	for r, bound := range s.w.liveRenderers {
		if bound == s.id {
			s.w.record("DANGLING renderer %s on surface %s", r, s.id)
		}
	}
	delete(s.w.liveSurfaces, s.id)
	s.w.record("surface.destroy %dx%d", s.bounds.Width, s.bounds.Height)
}

// surfaceFactory implements surface.Factory
type surfaceFactory struct{ w *world }

func (f surfaceFactory) CreateSurface(parent native.Handle, bounds native.Rect) (surface.Surface, error) {
	w := f.w
	if len(w.liveSurfaces) > 0 || len(w.liveRenderers) > 0 {
		w.overlap = true
	}
	if w.onCreateSurface != nil {
		hook := w.onCreateSurface
		w.onCreateSurface = nil
		hook()
	}
	if w.failSurface {
		w.record("surface.create failed")
		return nil, fmt.Errorf("%w: out of window handles", surface.ErrSurfaceCreation)
	}
	s := &fakeSurface{w: w, id: w.id(), bounds: bounds, parent: parent}
	w.liveSurfaces[s.id] = s
	w.record("surface.create %dx%d", bounds.Width, bounds.Height)
	return s, nil
}

// engine implements renderer.Engine
type engine struct{ w *world }

func (e engine) CreateRenderer() native.Handle {
	w := e.w
	if len(w.liveRenderers) > 0 {
		w.overlap = true
	}
	if w.failCreate {
		w.record("renderer.create empty")
		return native.Empty
	}
	h := w.id()
	w.liveRenderers[h] = native.Empty
	w.record("renderer.create")
	return h
}

func (e engine) InitializeRenderer(r, surf native.Handle) error {
	w := e.w
	if w.failBind {
		w.record("renderer.bind failed")
		return errors.New("swap chain creation failed")
	}
	w.liveRenderers[r] = surf
	w.record("renderer.bind")
	return nil
}

func (e engine) RenderFrame(r native.Handle) error {
	w := e.w
	w.frames++
	w.record("renderer.render")
	if w.failRenderAt > 0 && w.frames == w.failRenderAt {
		return errors.New("device removed")
	}
	return nil
}

func (e engine) DestroyRenderer(r native.Handle) {
	if _, ok := e.w.liveRenderers[r]; !ok {
		e.w.record("renderer.destroy UNKNOWN")
		return
	}
	delete(e.w.liveRenderers, r)
	e.w.record("renderer.destroy")
}

// ticker implements TickSource
type ticker struct {
	w  *world
	fn func()
}

func (t *ticker) Subscribe(fn func()) {
	t.fn = fn
	t.w.record("tick.subscribe")
}

func (t *ticker) Unsubscribe() {
	if t.fn == nil {
		return
	}
	t.fn = nil
	t.w.record("tick.unsubscribe")
}

func (t *ticker) Fire() {
	if t.fn != nil {
		t.fn()
	}
}
