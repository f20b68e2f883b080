package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/domain/native"
)

// Replayer plays recorded events back into an EventTarget
type Replayer struct {
	data Trace
	next int
}

// NewReplayer creates a new replayer from a trace
func NewReplayer(data Trace) *Replayer {
	return &Replayer{data: data}
}

// LoadTrace loads a trace from a file
func LoadTrace(filename string) (*Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Trace
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	for i, e := range data.Events {
		switch e.Kind {
		case KindReady, KindResize, KindTick, KindClosing:
		default:
			return nil, fmt.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
	}

	return &data, nil
}

// Next returns the next event and advances
func (r *Replayer) Next() (Event, bool) {
	if r.next >= len(r.data.Events) {
		return Event{}, false
	}
	e := r.data.Events[r.next]
	r.next++
	return e, true
}

// Play delivers every remaining event to target in order and returns how many
// were delivered
func (r *Replayer) Play(target binding.EventTarget) int {
	n := 0
	for {
		e, ok := r.Next()
		if !ok {
			return n
		}
		Dispatch(target, e)
		n++
	}
}

// Dispatch delivers a single event to target
func Dispatch(target binding.EventTarget, e Event) {
	switch e.Kind {
	case KindReady:
		target.OnSurfaceReady(native.Handle(e.Host), e.W, e.H)
	case KindResize:
		target.OnSurfaceResized(e.W, e.H)
	case KindTick:
		target.OnFrameTick()
	case KindClosing:
		target.OnClosing()
	}
}

// Position returns the index of the next event
func (r *Replayer) Position() int {
	return r.next
}

// TotalEvents returns the total number of events
func (r *Replayer) TotalEvents() int {
	return len(r.data.Events)
}

// Reset rewinds the replayer to the beginning
func (r *Replayer) Reset() {
	r.next = 0
}

// CreateTestTrace creates a trace for testing: ready at width×height, the
// given number of ticks, then closing
func CreateTestTrace(host native.Handle, width, height, ticks int) Trace {
	data := Trace{
		Version:   TraceVersion,
		StartTime: "2026-01-01T00:00:00Z",
		Events:    make([]Event, 0, ticks+2),
	}

	data.Events = append(data.Events, Event{Kind: KindReady, Host: uint64(host), W: width, H: height})
	for i := 0; i < ticks; i++ {
		data.Events = append(data.Events, Event{F: i, Kind: KindTick})
	}
	data.Events = append(data.Events, Event{F: ticks, Kind: KindClosing})

	return data
}
