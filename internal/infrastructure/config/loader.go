package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// EditorFile is the name of the editor configuration inside the config directory
const EditorFile = "editor.json"

// Loader loads editor configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadEditor loads editor.json, applies defaults and validates the result
func (l *Loader) LoadEditor() (*EditorConfig, error) {
	data, err := fs.ReadFile(l.fsys, EditorFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", l.basePath, EditorFile, err)
	}

	var cfg EditorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", EditorFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EditorFile, err)
	}

	return &cfg, nil
}
