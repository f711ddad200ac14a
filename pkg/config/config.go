package config

import (
	"time"

	"mercator-hq/stencil/pkg/tmpl/parser"
)

// Config is the root configuration structure for stencil.
// It contains the parser limits and the settings for the lint, watch and
// history commands, plus telemetry.
type Config struct {
	// Parser contains the limits applied to every template parse.
	Parser ParserConfig `yaml:"parser"`

	// Lint contains settings for linting template files.
	Lint LintConfig `yaml:"lint"`

	// Watch contains settings for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// History contains settings for recording lint results.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains template parser limits.
type ParserConfig struct {
	// MaxDepth is the maximum nesting of variables. A top-level variable
	// has depth 1.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`

	// MaxNodes is the maximum number of AST nodes per template, the
	// document node included.
	// Default: 4096
	MaxNodes int `yaml:"max_nodes"`

	// StrictClose rejects "}}" outside of a variable instead of treating it
	// as literal text.
	// Default: false
	StrictClose bool `yaml:"strict_close"`
}

// ToParser converts the section to a parser configuration.
func (c ParserConfig) ToParser() parser.Config {
	return parser.Config{
		MaxDepth:    c.MaxDepth,
		MaxNodes:    c.MaxNodes,
		StrictClose: c.StrictClose,
	}
}

// LintConfig contains template lint settings.
type LintConfig struct {
	// Extensions lists the file extensions picked up when linting a directory.
	// Default: [".tmpl", ".tpl", ".mustache"]
	Extensions []string `yaml:"extensions"`

	// MaxFileSize is the largest template file that will be read, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// ContextLines is the number of source lines shown around an error.
	// Default: 1
	ContextLines int `yaml:"context_lines"`
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// re-linting.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// SkipHidden ignores files and directories whose names start with ".".
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`
}

// HistoryConfig contains lint history settings.
type HistoryConfig struct {
	// Enabled controls whether lint results are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention controls automatic pruning of old records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains history retention settings.
type RetentionConfig struct {
	// Days is how long records are kept. 0 keeps records forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored records. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is the cron expression for pruning.
	// Default: "0 3 * * *" (daily at 3am)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether parse metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// ListenAddress is where watch mode serves metrics. Empty disables the
	// endpoint.
	// Default: ""
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	// Default: "stencil"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "parser"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for parse duration (seconds).
	// Default: [0.00001, 0.0001, 0.001, 0.01, 0.1, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the trace exporter to use.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the trace collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "stencil"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
