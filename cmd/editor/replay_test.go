package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/application/replay"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/infrastructure/config"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/engines"
)

// saveTrace writes trace to a temp file through the recorder
func saveTrace(t *testing.T, trace replay.Trace) string {
	t.Helper()
	r := replay.NewRecorder()
	replay.NewReplayer(trace).Play(r)

	filename := filepath.Join(t.TempDir(), replay.GenerateFilename())
	require.NoError(t, r.Save(filename))
	return filename
}

func TestLoadConfig_Embedded(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Mythforge Editor", cfg.Window.Title)
	assert.Equal(t, "teardown", cfg.Renderer.OnRenderFailure)
}

func TestLoadConfig_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.EditorFile),
		[]byte(`{"window": {"title": "Scratch"}, "renderer": {"onRenderFailure": "keep-surface"}}`), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Scratch", cfg.Window.Title)
	assert.Equal(t, "keep-surface", cfg.Renderer.OnRenderFailure)
}

func TestRunReplay(t *testing.T) {
	trace := replay.CreateTestTrace(1, 64, 48, 20)
	filename := saveTrace(t, trace)

	stats, err := runReplay(filename, config.Default(), binding.TeardownAll, diagnostics.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Binds)
	assert.Equal(t, 20, stats.Frames)
	assert.Equal(t, 0, stats.FrameFailures)
	assert.Equal(t, native.Rect{Width: 64, Height: 48}, stats.LastBoundRect)
}

func TestRunReplay_WithResizes(t *testing.T) {
	trace := replay.Trace{
		Version: replay.TraceVersion,
		Events: []replay.Event{
			{Kind: replay.KindResize, W: 10, H: 10}, // before ready, ignored
			{Kind: replay.KindReady, Host: 1, W: 32, H: 32},
			{Kind: replay.KindTick},
			{Kind: replay.KindResize, W: 48, H: 24},
			{Kind: replay.KindTick},
			{Kind: replay.KindResize, W: 0, H: 24}, // minimized
			{Kind: replay.KindTick},
			{Kind: replay.KindResize, W: 64, H: 24},
			{Kind: replay.KindTick},
		},
	}
	filename := saveTrace(t, trace)

	stats, err := runReplay(filename, config.Default(), binding.TeardownAll, diagnostics.NewNopLogger())
	require.NoError(t, err, "a trace without closing is closed by the replay")

	assert.Equal(t, 3, stats.Binds)
	assert.Equal(t, 1, stats.Rebinds)
	assert.Equal(t, 1, stats.BindFailures)
	assert.Equal(t, 3, stats.Frames)
	assert.Equal(t, native.Rect{Width: 64, Height: 24}, stats.LastBoundRect)
}

func TestRunReplay_NullBackend(t *testing.T) {
	filename := saveTrace(t, replay.CreateTestTrace(1, 32, 32, 5))
	cfg := config.Default()
	cfg.Renderer.Backend = engines.BackendNull

	stats, err := runReplay(filename, cfg, binding.TeardownAll, diagnostics.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Frames)
}

func TestRunReplay_UnknownBackend(t *testing.T) {
	filename := saveTrace(t, replay.CreateTestTrace(1, 32, 32, 1))
	cfg := config.Default()
	cfg.Renderer.Backend = "directx12"

	_, err := runReplay(filename, cfg, binding.TeardownAll, diagnostics.NewNopLogger())
	assert.ErrorIs(t, err, engines.ErrUnknownBackend)
}

func TestRunReplay_MissingFile(t *testing.T) {
	_, err := runReplay(filepath.Join(t.TempDir(), "missing.json"), config.Default(), binding.TeardownAll, diagnostics.NewNopLogger())
	assert.Error(t, err)
}

func TestFormatStats(t *testing.T) {
	s := binding.Stats{Binds: 2, Rebinds: 1, Frames: 9, LastBoundRect: native.Rect{Width: 8, Height: 4}}

	assert.Equal(t, "binds=2 rebinds=1 bindFailures=0 frames=9 frameFailures=0 lastRect=8x4+0+0", formatStats(s))
}
