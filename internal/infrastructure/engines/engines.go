// Package engines selects the render engine backend by name
package engines

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/younwookim/mythforge/internal/domain/renderer"
	"github.com/younwookim/mythforge/internal/infrastructure/ggengine"
)

// Backend names
const (
	BackendGG   = "gg"
	BackendNull = "null"
)

// ErrUnknownBackend is returned by New for names with no registered constructor
var ErrUnknownBackend = errors.New("engines: unknown backend")

// Engine is a render engine that can report its live renderers
type Engine interface {
	renderer.Engine
	Live() int
}

// Constructor builds an engine that presents into targets
type Constructor func(targets ggengine.Resolver, cfg ggengine.Config) Engine

var registry = map[string]Constructor{
	BackendGG: func(targets ggengine.Resolver, cfg ggengine.Config) Engine {
		return ggengine.New(targets, cfg)
	},
	BackendNull: func(targets ggengine.Resolver, cfg ggengine.Config) Engine {
		return NewNull(targets, cfg)
	},
}

// New creates the engine registered under name
func New(name string, targets ggengine.Resolver, cfg ggengine.Config) (Engine, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return ctor(targets, cfg), nil
}

// Names returns the registered backend names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
