package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Defaults applied by Validate to zero-valued fields
const (
	DefaultWindowWidth    = 1280
	DefaultWindowHeight   = 720
	DefaultWindowTitle    = "Mythforge Editor"
	DefaultTPS            = 60
	DefaultTerminalHeight = 160
	DefaultTerminalLines  = 200
	DefaultClearColor     = "#003366"
	DefaultBackend        = "gg"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the configuration used when no editor.json is found
func Default() *EditorConfig {
	cfg := &EditorConfig{
		Terminal: TerminalConfig{Visible: true},
		Window:   WindowConfig{Resizable: true},
	}
	// zero values only; cannot fail
	_ = cfg.Validate()
	return cfg
}

// Validate fills defaults and rejects values the editor cannot run with
func (c *EditorConfig) Validate() error {
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = DefaultWindowTitle
	}
	if c.Window.TPS <= 0 {
		c.Window.TPS = DefaultTPS
	}

	if c.Terminal.Height < 0 {
		return fmt.Errorf("%w: terminal.height %d is negative", ErrInvalidConfig, c.Terminal.Height)
	}
	if c.Terminal.Height == 0 {
		c.Terminal.Height = DefaultTerminalHeight
	}
	if c.Terminal.Visible && c.Terminal.Height >= c.Window.Height {
		return fmt.Errorf("%w: terminal.height %d leaves no room in a %d pixel window",
			ErrInvalidConfig, c.Terminal.Height, c.Window.Height)
	}
	if c.Terminal.MaxLines <= 0 {
		c.Terminal.MaxLines = DefaultTerminalLines
	}

	if c.Renderer.Backend == "" {
		c.Renderer.Backend = DefaultBackend
	}
	if c.Renderer.ClearColor == "" {
		c.Renderer.ClearColor = DefaultClearColor
	}
	if _, err := ParseColor(c.Renderer.ClearColor); err != nil {
		return fmt.Errorf("%w: renderer.clearColor: %w", ErrInvalidConfig, err)
	}
	if c.Renderer.MaxRenderers < 0 {
		return fmt.Errorf("%w: renderer.maxRenderers %d is negative", ErrInvalidConfig, c.Renderer.MaxRenderers)
	}
	switch c.Renderer.OnRenderFailure {
	case "":
		c.Renderer.OnRenderFailure = "teardown"
	case "teardown", "keep-surface":
	default:
		return fmt.Errorf("%w: renderer.onRenderFailure %q (want teardown or keep-surface)",
			ErrInvalidConfig, c.Renderer.OnRenderFailure)
	}

	return nil
}

// ClearColor returns the parsed renderer clear color
func (c *EditorConfig) ClearColor() color.NRGBA {
	col, err := ParseColor(c.Renderer.ClearColor)
	if err != nil {
		col, _ = ParseColor(DefaultClearColor)
	}
	return col
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or an SVG 1.1 color name such as "midnightblue".
// Hex alpha is straight (not premultiplied), as in CSS.
func ParseColor(s string) (color.NRGBA, error) {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}

	col, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: unknown name", s)
	}
	// named colors are opaque, so the premultiplied and straight forms agree
	return color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A}, nil
}
