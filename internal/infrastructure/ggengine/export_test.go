package ggengine

import "github.com/gogpu/gg"

// SetFlush replaces the accelerator flush step
func (e *Engine) SetFlush(fn func(*gg.Context) error) {
	e.flush = fn
}
