package config

import (
	"fmt"
	"sync/atomic"
)

// current holds the process-wide configuration used by the CLI.
var current atomic.Pointer[Config]

// Initialize loads configuration from path with environment overrides and
// installs it as the process-wide configuration. An empty path installs the
// defaults plus environment overrides. On error the previous configuration
// is kept.
func Initialize(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	current.Store(cfg)
	return nil
}

// Current returns the process-wide configuration, or Default() if Initialize
// has not succeeded yet. The returned value must not be modified.
func Current() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	return Default()
}

// SetConfig installs cfg as the process-wide configuration. A nil cfg resets
// to defaults. Intended for tests.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}
