package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/domain/native"
)

// Recorder records host events for replay. It is itself an EventTarget so the
// host window can forward to it alongside the controller.
type Recorder struct {
	data      Trace
	recording bool
	frame     int
}

var _ binding.EventTarget = (*Recorder)(nil)

// NewRecorder creates a recorder that starts recording immediately
func NewRecorder() *Recorder {
	return &Recorder{
		data: Trace{
			Version:   TraceVersion,
			StartTime: time.Now().Format(time.RFC3339),
			Events:    make([]Event, 0, 3600), // ~1 minute of ticks at 60fps
		},
		recording: true,
	}
}

func (r *Recorder) record(e Event) {
	if !r.recording {
		return
	}
	e.F = r.frame
	r.data.Events = append(r.data.Events, e)
}

func (r *Recorder) OnSurfaceReady(host native.Handle, width, height int) {
	r.record(Event{Kind: KindReady, Host: uint64(host), W: width, H: height})
}

func (r *Recorder) OnSurfaceResized(width, height int) {
	r.record(Event{Kind: KindResize, W: width, H: height})
}

func (r *Recorder) OnFrameTick() {
	r.record(Event{Kind: KindTick})
	if r.recording {
		r.frame++
	}
}

// OnClosing records the closing event and stops recording
func (r *Recorder) OnClosing() {
	r.record(Event{Kind: KindClosing})
	r.recording = false
}

// Save writes the trace to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Events) == 0 {
		return fmt.Errorf("no events to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// Data returns the recorded trace
func (r *Recorder) Data() Trace {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
