// Package cmd implements the command-line interface for s4.
package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings that can be supplied via a YAML config file,
// overridden by whichever command-line flags the user actually passes
// (flags win; a config file just supplies defaults).
type Config struct {
	BlockSize      uint64 `yaml:"block_size"`
	DefaultTZ      string `yaml:"default_tz"`
	Highlight      *bool  `yaml:"highlight"`
	NoLineCache    bool   `yaml:"no_line_cache"`
	NoSyslineCache bool   `yaml:"no_sysline_cache"`
	YearHint       int    `yaml:"year_hint"`
}

// defaultConfig returns the built-in defaults applied before any config
// file or flag is consulted.
func defaultConfig() Config {
	return Config{
		BlockSize: 1 << 16,
		DefaultTZ: "+00:00",
	}
}

// loadConfig reads a YAML config file at path, merging its values over
// defaultConfig(). An empty path is not an error: the defaults are
// returned unchanged, matching the teacher's own "absent config is not a
// failure" convention for optional inputs.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = defaultConfig().BlockSize
	}
	if cfg.DefaultTZ == "" {
		cfg.DefaultTZ = defaultConfig().DefaultTZ
	}
	return cfg, nil
}
