// Package replay records the host window events a binding controller receives
// and plays them back without a window
package replay

// TraceVersion is written into every recorded trace
const TraceVersion = "1.0"

// EventKind names a host window event
type EventKind string

const (
	KindReady   EventKind = "ready"
	KindResize  EventKind = "resize"
	KindTick    EventKind = "tick"
	KindClosing EventKind = "closing"
)

// Event records a single host event
type Event struct {
	F    int       `json:"f"`              // Frame number (ticks seen before this event)
	Kind EventKind `json:"kind"`           // Event kind
	Host uint64    `json:"host,omitempty"` // Host handle (ready only)
	W    int       `json:"w,omitempty"`    // Width (ready, resize)
	H    int       `json:"h,omitempty"`    // Height (ready, resize)
}

// Trace contains all events of one editor session
type Trace struct {
	Version   string  `json:"version"`
	StartTime string  `json:"startTime"`
	Events    []Event `json:"events"`
}

// Ticks returns the number of tick events in the trace
func (t *Trace) Ticks() int {
	n := 0
	for _, e := range t.Events {
		if e.Kind == KindTick {
			n++
		}
	}
	return n
}
