package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := Default()
	cfg.History.Backend = "memory"
	return &ConfigBuilder{cfg: *cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithLimits sets the parser limits.
func (b *ConfigBuilder) WithLimits(maxDepth, maxNodes int) *ConfigBuilder {
	b.cfg.Parser.MaxDepth = maxDepth
	b.cfg.Parser.MaxNodes = maxNodes
	return b
}

// WithStrictClose sets parser.strict_close.
func (b *ConfigBuilder) WithStrictClose(strict bool) *ConfigBuilder {
	b.cfg.Parser.StrictClose = strict
	return b
}

// WithExtensions sets the lint extensions.
func (b *ConfigBuilder) WithExtensions(exts ...string) *ConfigBuilder {
	b.cfg.Lint.Extensions = exts
	return b
}

// WithHistory enables history with the given backend and path.
func (b *ConfigBuilder) WithHistory(backend, path string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Backend = backend
	b.cfg.History.Path = path
	return b
}

// WithRetentionSchedule sets the history pruning schedule.
func (b *ConfigBuilder) WithRetentionSchedule(schedule string) *ConfigBuilder {
	b.cfg.History.Retention.Schedule = schedule
	return b
}

// WithDebounce sets the watch debounce interval.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithLogging sets the logging level and format.
func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithTracing enables tracing to endpoint.
func (b *ConfigBuilder) WithTracing(endpoint string, ratio float64) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	b.cfg.Telemetry.Tracing.SampleRatio = ratio
	return b
}
