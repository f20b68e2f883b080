package binding

import "github.com/younwookim/mythforge/internal/domain/native"

// TickSource delivers the host's per-frame signal.
//
// At most one subscriber is registered at a time. Subscribe replaces any
// previous subscriber; Unsubscribe with no subscriber is a no-op.
type TickSource interface {
	Subscribe(fn func())
	Unsubscribe()
}

// EventTarget receives the four host window events
type EventTarget interface {
	OnSurfaceReady(host native.Handle, width, height int)
	OnSurfaceResized(width, height int)
	OnFrameTick()
	OnClosing()
}
