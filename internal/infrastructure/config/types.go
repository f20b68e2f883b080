package config

// EditorConfig is the root config for editor.json
type EditorConfig struct {
	Window   WindowConfig   `json:"window"`
	Terminal TerminalConfig `json:"terminal"`
	Renderer RendererConfig `json:"renderer"`
	Logging  LoggingConfig  `json:"logging"`
}

// WindowConfig configures the host window
type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	TPS       int    `json:"tps"` // Update calls per second
	Resizable bool   `json:"resizable"`
}

// TerminalConfig configures the debug terminal strip below the renderer container
type TerminalConfig struct {
	Height   int  `json:"height"`   // Strip height (pixels)
	MaxLines int  `json:"maxLines"` // Lines kept in memory
	Visible  bool `json:"visible"`
}

// RendererConfig configures the render engine and the binding controller
type RendererConfig struct {
	Backend         string `json:"backend"`         // Render engine backend ("gg", "null")
	ClearColor      string `json:"clearColor"`      // "#rrggbb", "#rrggbbaa" or an SVG color name
	MaxRenderers    int    `json:"maxRenderers"`    // 0 = unlimited
	OnRenderFailure string `json:"onRenderFailure"` // "teardown" or "keep-surface"
}

type LoggingConfig struct {
	Prefix string `json:"prefix"`
	Debug  bool   `json:"debug"`
}
