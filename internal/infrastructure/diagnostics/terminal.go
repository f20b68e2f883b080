package diagnostics

import (
	"bytes"
	"strings"
	"sync"
)

// DefaultTerminalLines is used when a Terminal is created with a non-positive capacity
const DefaultTerminalLines = 200

// Terminal is an append-only, bounded buffer of log lines shown in the editor's
// debug terminal. It implements io.Writer so it can sit behind a log.Logger.
//
// Writes may come from any goroutine; the host reads lines on its draw goroutine.
type Terminal struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	partial  bytes.Buffer
}

// NewTerminal creates a terminal keeping at most maxLines lines
func NewTerminal(maxLines int) *Terminal {
	if maxLines <= 0 {
		maxLines = DefaultTerminalLines
	}
	return &Terminal{
		lines:    make([]string, 0, maxLines),
		maxLines: maxLines,
	}
}

// Write appends complete lines. A trailing fragment is held until its newline arrives.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.partial.Write(p)
	for {
		data := t.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		t.appendLocked(strings.TrimRight(string(data[:i]), "\r"))
		t.partial.Next(i + 1)
	}
	return len(p), nil
}

func (t *Terminal) appendLocked(line string) {
	if len(t.lines) == t.maxLines {
		// drop oldest
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:len(t.lines)-1]
	}
	t.lines = append(t.lines, line)
}

// Lines returns a copy of the buffered lines, oldest first
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Tail returns at most the last n lines, oldest first
func (t *Terminal) Tail(n int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 {
		return nil
	}
	if n > len(t.lines) {
		n = len(t.lines)
	}
	out := make([]string, n)
	copy(out, t.lines[len(t.lines)-n:])
	return out
}

// Len returns the number of buffered lines
func (t *Terminal) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}
