package main

import (
	"fmt"

	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/application/host"
	"github.com/younwookim/mythforge/internal/application/replay"
	"github.com/younwookim/mythforge/internal/application/state"
	"github.com/younwookim/mythforge/internal/infrastructure/config"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/engines"
	"github.com/younwookim/mythforge/internal/infrastructure/memsurface"
)

// replayTarget routes trace ticks through the ticker, as the window does, so
// the controller only hears them while it is subscribed
type replayTarget struct {
	*binding.Controller
	ticker *host.Ticker
}

func (t replayTarget) OnFrameTick() {
	t.ticker.Fire()
}

// runReplay plays a recorded trace against in-memory surfaces and the gg engine
func runReplay(filename string, cfg *config.EditorConfig, policy binding.FailurePolicy, logger diagnostics.Logger) (binding.Stats, error) {
	trace, err := replay.LoadTrace(filename)
	if err != nil {
		return binding.Stats{}, err
	}

	surfaces := memsurface.NewFactory()
	engine, err := engines.New(cfg.Renderer.Backend, surfaces, engineConfig(cfg, logger))
	if err != nil {
		return binding.Stats{}, err
	}
	ticker := host.NewTicker()
	controller := binding.NewController(surfaces, engine, ticker, binding.Options{
		FailurePolicy: policy,
		Logger:        logger,
	})

	n := replay.NewReplayer(*trace).Play(replayTarget{controller, ticker})
	logger.Infof("Replayed %d events (%d ticks) from %s", n, trace.Ticks(), filename)

	// Traces cut short by a crash have no closing event
	if controller.State() != state.StateClosed {
		controller.OnClosing()
	}

	stats := controller.Stats()
	if surfaces.Live() != 0 || engine.Live() != 0 {
		return stats, fmt.Errorf("replay leaked %d surfaces and %d renderers", surfaces.Live(), engine.Live())
	}
	return stats, nil
}

func formatStats(s binding.Stats) string {
	return fmt.Sprintf("binds=%d rebinds=%d bindFailures=%d frames=%d frameFailures=%d lastRect=%s",
		s.Binds, s.Rebinds, s.BindFailures, s.Frames, s.FrameFailures, s.LastBoundRect)
}
