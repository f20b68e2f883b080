package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordsEventsWithFrames(t *testing.T) {
	r := NewRecorder()

	r.OnSurfaceReady(7, 640, 480)
	r.OnFrameTick()
	r.OnFrameTick()
	r.OnSurfaceResized(800, 600)
	r.OnFrameTick()
	r.OnClosing()

	data := r.Data()
	assert.Equal(t, TraceVersion, data.Version)
	require.Len(t, data.Events, 6)
	assert.Equal(t, Event{F: 0, Kind: KindReady, Host: 7, W: 640, H: 480}, data.Events[0])
	assert.Equal(t, Event{F: 1, Kind: KindTick}, data.Events[2])
	assert.Equal(t, Event{F: 2, Kind: KindResize, W: 800, H: 600}, data.Events[3])
	assert.Equal(t, Event{F: 3, Kind: KindClosing}, data.Events[5])
	assert.Equal(t, 3, data.Ticks())
}

func TestRecorder_StopsAtClosing(t *testing.T) {
	r := NewRecorder()

	r.OnSurfaceReady(1, 10, 10)
	r.OnClosing()
	assert.False(t, r.IsRecording())

	r.OnFrameTick()
	r.OnSurfaceResized(20, 20)
	assert.Equal(t, 2, r.EventCount())
}

func TestRecorder_Stop(t *testing.T) {
	r := NewRecorder()
	r.Stop()
	r.OnSurfaceReady(1, 10, 10)

	assert.Equal(t, 0, r.EventCount())
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	r := NewRecorder()
	r.OnSurfaceReady(3, 320, 200)
	r.OnFrameTick()
	r.OnClosing()

	filename := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, r.Save(filename))

	loaded, err := LoadTrace(filename)
	require.NoError(t, err)
	assert.Equal(t, r.Data().Events, loaded.Events)
	assert.Equal(t, TraceVersion, loaded.Version)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder()
	assert.Error(t, r.Save(filepath.Join(t.TempDir(), "empty.json")))
}

func TestLoadTrace_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTrace(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"events": [`), 0o644))
	_, err = LoadTrace(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"events": [{"f": 0, "kind": "minimize"}]}`), 0o644))
	_, err = LoadTrace(unknown)
	assert.ErrorContains(t, err, "minimize")
}

func TestReplayer_Next(t *testing.T) {
	replayer := NewReplayer(CreateTestTrace(5, 64, 48, 2))

	assert.Equal(t, 4, replayer.TotalEvents())

	e, ok := replayer.Next()
	require.True(t, ok)
	assert.Equal(t, KindReady, e.Kind)
	assert.Equal(t, uint64(5), e.Host)

	replayer.Next()
	replayer.Next()
	e, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, KindClosing, e.Kind)
	assert.Equal(t, 4, replayer.Position())

	_, ok = replayer.Next()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.Position())
}

func TestReplayer_PlayIntoRecorder(t *testing.T) {
	trace := CreateTestTrace(9, 100, 50, 3)
	trace.Events = append(trace.Events[:2], append([]Event{{F: 1, Kind: KindResize, W: 120, H: 60}}, trace.Events[2:]...)...)

	r := NewRecorder()
	n := NewReplayer(trace).Play(r)

	assert.Equal(t, len(trace.Events), n)
	assert.Equal(t, trace.Events, r.Data().Events)
}
