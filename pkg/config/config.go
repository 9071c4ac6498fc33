// Package config defines the configuration for mdreview: Markdown flavor,
// collapse policy for edited-away comment anchors, and backup behavior.
// Pure data types; loading lives in this package too since the surface is
// one small YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdreview/pkg/comment"
)

// FileName is the config file discovered in the document's directory or any
// parent.
const FileName = ".mdreview.yaml"

// Flavor specifies the Markdown flavor used for rendering.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// BackupsConfig controls sidecar backups for in-place document edits.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for mdreview.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// CollapsePolicy decides what happens to comments whose anchors collapse
	// under edits: "drop", "clamp", or "keep".
	CollapsePolicy comment.CollapsePolicy `yaml:"collapse_policy"`

	// Backups configures sidecar backups before the first in-place edit.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// LogLevel sets the logging verbosity.
	LogLevel string `yaml:"-"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Flavor:         FlavorGFM,
		CollapsePolicy: comment.PolicyDrop,
		Backups:        BackupsConfig{Enabled: false},
		LogLevel:       "info",
	}
}

// Validate checks the configuration for unknown enum values.
func (c *Config) Validate() error {
	if !c.Flavor.IsValid() {
		return fmt.Errorf("config: unknown flavor %q", c.Flavor)
	}
	if !c.CollapsePolicy.Valid() {
		return fmt.Errorf("config: unknown collapse_policy %q", c.CollapsePolicy)
	}
	return nil
}

// Load reads a config file. A missing file is not an error: defaults are
// returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover searches dir and its parents for the config file and loads the
// first hit. Defaults are returned when no file is found.
func Discover(dir string) (*Config, error) {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
