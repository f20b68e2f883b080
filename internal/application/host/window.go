// Package host turns the ebiten game loop into the host window events the
// binding controller consumes.
//
// The window is split into a renderer container on top and a debug terminal
// strip below it. The first Update after Layout reports the container as ready,
// later size changes are reported as resizes, every Draw fires the frame tick,
// and a close request is reported once before the loop terminates.
package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/application/state"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/handles"
)

// Debug text metrics of ebitenutil.DebugPrint
const (
	lineHeight    = 16
	terminalInset = 4
)

var terminalBackground = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}

// windows issues the native handles of host windows
var windows = handles.NewTable[*Window]()

// Compositor draws the live child surfaces onto the window
type Compositor interface {
	Composite(screen *ebiten.Image)
}

// StatusProvider is implemented by targets that can report their binding
// status for the terminal header
type StatusProvider interface {
	State() state.BindingState
	Stats() binding.Stats
}

// Config configures the window layout
type Config struct {
	TerminalHeight  int
	TerminalVisible bool
}

// Window implements ebiten.Game and translates the game loop into host events
type Window struct {
	handle   native.Handle
	cfg      Config
	ticker   *Ticker
	terminal *diagnostics.Terminal

	target     binding.EventTarget
	compositor Compositor
	recorder   binding.EventTarget

	// closeRequested defaults to ebiten.IsWindowBeingClosed
	closeRequested func() bool

	outsideW, outsideH     int
	containerW, containerH int
	ready                  bool
	closed                 bool
}

var _ ebiten.Game = (*Window)(nil)

// NewWindow creates a window and registers its native handle.
// terminal may be nil.
func NewWindow(cfg Config, terminal *diagnostics.Terminal) *Window {
	w := &Window{
		cfg:            cfg,
		ticker:         NewTicker(),
		terminal:       terminal,
		closeRequested: ebiten.IsWindowBeingClosed,
	}
	w.handle = windows.Register(w)
	return w
}

// Handle returns the native handle of the window; it names the parent of every
// child surface
func (w *Window) Handle() native.Handle {
	return w.handle
}

// Ticker returns the frame tick source fired by Draw
func (w *Window) Ticker() *Ticker {
	return w.ticker
}

// Attach sets the receiver of host events and the compositor that draws child
// surfaces. compositor may be nil.
func (w *Window) Attach(target binding.EventTarget, compositor Compositor) {
	w.target = target
	w.compositor = compositor
}

// SetRecorder forwards every host event to r as well. Pass nil to stop.
func (w *Window) SetRecorder(r binding.EventTarget) {
	w.recorder = r
}

// Closed reports whether the closing event has been delivered
func (w *Window) Closed() bool {
	return w.closed
}

// ContainerSize returns the renderer container size last reported to the target
func (w *Window) ContainerSize() (int, int) {
	return w.containerW, w.containerH
}

func (w *Window) container() (int, int) {
	h := w.outsideH
	if w.cfg.TerminalVisible {
		h -= w.cfg.TerminalHeight
	}
	return w.outsideW, h
}

func (w *Window) each(fn func(t binding.EventTarget)) {
	if w.recorder != nil {
		fn(w.recorder)
	}
	if w.target != nil {
		fn(w.target)
	}
}

// Update delivers ready, resize and closing events.
// Implements ebiten.Game interface.
func (w *Window) Update() error {
	if w.closed {
		return ebiten.Termination
	}

	if w.closeRequested() {
		w.closed = true
		w.each(func(t binding.EventTarget) { t.OnClosing() })
		windows.Unregister(w.handle)
		return ebiten.Termination
	}

	cw, ch := w.container()
	if cw <= 0 || ch <= 0 {
		return nil
	}

	switch {
	case !w.ready:
		w.ready = true
		w.each(func(t binding.EventTarget) { t.OnSurfaceReady(w.handle, cw, ch) })
	case cw != w.containerW || ch != w.containerH:
		w.each(func(t binding.EventTarget) { t.OnSurfaceResized(cw, ch) })
	}
	w.containerW, w.containerH = cw, ch

	return nil
}

// Draw fires the frame tick, composites child surfaces and draws the terminal.
// Implements ebiten.Game interface.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.ready && !w.closed {
		if w.recorder != nil {
			w.recorder.OnFrameTick()
		}
		w.ticker.Fire()
	}

	if w.compositor != nil {
		w.compositor.Composite(screen)
	}

	if w.cfg.TerminalVisible && w.terminal != nil {
		w.drawTerminal(screen)
	}
}

func (w *Window) drawTerminal(screen *ebiten.Image) {
	top := w.outsideH - w.cfg.TerminalHeight
	ebitenutil.DrawRect(screen, 0, float64(top), float64(w.outsideW), float64(w.cfg.TerminalHeight), terminalBackground)

	y := top + terminalInset
	rows := (w.cfg.TerminalHeight - terminalInset) / lineHeight
	if status := w.StatusLine(); status != "" && rows > 0 {
		ebitenutil.DebugPrintAt(screen, status, terminalInset, y)
		y += lineHeight
		rows--
	}
	for _, line := range w.terminal.Tail(rows) {
		ebitenutil.DebugPrintAt(screen, line, terminalInset, y)
		y += lineHeight
	}
}

// StatusLine summarizes the attached target, or "" if it cannot report status
func (w *Window) StatusLine() string {
	sp, ok := w.target.(StatusProvider)
	if !ok {
		return ""
	}
	s := sp.Stats()
	return fmt.Sprintf("[%s] %dx%d binds=%d rebinds=%d frames=%d failures=%d",
		sp.State(), w.containerW, w.containerH, s.Binds, s.Rebinds, s.Frames, s.BindFailures+s.FrameFailures)
}

// Layout returns the outside size unchanged and records it for the next Update.
// Implements ebiten.Game interface.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.outsideW, w.outsideH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
