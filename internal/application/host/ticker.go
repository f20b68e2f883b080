package host

import "github.com/younwookim/mythforge/internal/application/binding"

// Ticker is the per-display-frame signal of the host window.
// The window fires it once per Draw; only the current subscriber hears it.
type Ticker struct {
	fn    func()
	fired int
}

var _ binding.TickSource = (*Ticker)(nil)

// NewTicker creates a ticker with no subscriber
func NewTicker() *Ticker {
	return &Ticker{}
}

// Subscribe replaces the current subscriber
func (t *Ticker) Subscribe(fn func()) {
	t.fn = fn
}

// Unsubscribe removes the current subscriber, if any
func (t *Ticker) Unsubscribe() {
	t.fn = nil
}

// Subscribed reports whether a subscriber is registered
func (t *Ticker) Subscribed() bool {
	return t.fn != nil
}

// Fire calls the current subscriber. A subscriber may unsubscribe from inside
// the call.
func (t *Ticker) Fire() {
	t.fired++
	if fn := t.fn; fn != nil {
		fn()
	}
}

// Fired returns how many times Fire was called
func (t *Ticker) Fired() int {
	return t.fired
}
