// Command editor opens the editor window and keeps a native renderer bound to
// its renderer container for as long as the window lives
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/mythforge/internal/application/binding"
	"github.com/younwookim/mythforge/internal/application/host"
	"github.com/younwookim/mythforge/internal/application/replay"
	"github.com/younwookim/mythforge/internal/infrastructure/config"
	"github.com/younwookim/mythforge/internal/infrastructure/diagnostics"
	"github.com/younwookim/mythforge/internal/infrastructure/ebitensurface"
	"github.com/younwookim/mythforge/internal/infrastructure/engines"
	"github.com/younwookim/mythforge/internal/infrastructure/ggengine"
)

// loadConfig reads editor.json from dir, or from the embedded configs when dir is empty
func loadConfig(dir string) (*config.EditorConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadEditor()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadEditor()
}

func engineConfig(cfg *config.EditorConfig, logger diagnostics.Logger) ggengine.Config {
	return ggengine.Config{
		ClearColor:   cfg.ClearColor(),
		MaxRenderers: cfg.Renderer.MaxRenderers,
		Logger:       logger,
	}
}

func runWindow(cfg *config.EditorConfig, policy binding.FailurePolicy, recordFilename string) error {
	terminal := diagnostics.NewTerminal(cfg.Terminal.MaxLines)
	logger := diagnostics.NewLogger(io.MultiWriter(os.Stderr, terminal), cfg.Logging.Prefix, cfg.Logging.Debug)

	window := host.NewWindow(host.Config{
		TerminalHeight:  cfg.Terminal.Height,
		TerminalVisible: cfg.Terminal.Visible,
	}, terminal)
	surfaces := ebitensurface.NewFactory(window.Handle())
	engine, err := engines.New(cfg.Renderer.Backend, surfaces, engineConfig(cfg, logger))
	if err != nil {
		return err
	}
	controller := binding.NewController(surfaces, engine, window.Ticker(), binding.Options{
		FailurePolicy: policy,
		Logger:        logger,
	})
	window.Attach(controller, surfaces)

	var recorder *replay.Recorder
	if recordFilename != "" {
		recorder = replay.NewRecorder()
		window.SetRecorder(recorder)
		logger.Infof("Recording enabled: %s", recordFilename)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)

	err = ebiten.RunGame(window)

	if recorder != nil {
		if serr := recorder.Save(recordFilename); serr != nil {
			log.Printf("Failed to save recording: %v", serr)
		} else {
			log.Printf("Recording saved: %s (%d events)", recordFilename, recorder.EventCount())
		}
	}

	return err
}

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Directory containing editor.json (default: embedded config)")
	recordFlag := flag.String("record", "", "Record host events to file (e.g., -record trace.json)")
	replayFlag := flag.String("replay", "", "Replay a recorded trace without a window and print stats")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *debugFlag {
		cfg.Logging.Debug = true
	}

	policy, err := binding.ParseFailurePolicy(cfg.Renderer.OnRenderFailure)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		logger := diagnostics.NewLogger(os.Stderr, cfg.Logging.Prefix, cfg.Logging.Debug)
		stats, err := runReplay(*replayFlag, cfg, policy, logger)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(formatStats(stats))
		return
	}

	if err := runWindow(cfg, policy, *recordFlag); err != nil {
		log.Fatal(err)
	}
}
