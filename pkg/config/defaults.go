package config

import (
	"time"

	"mercator-hq/stencil/pkg/tmpl"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxDepth    = parser.DefaultMaxDepth
	DefaultParserMaxNodes    = parser.DefaultMaxNodes
	DefaultParserStrictClose = false

	// Lint defaults
	DefaultLintMaxFileSize  = int64(tmpl.DefaultMaxFileSize)
	DefaultLintContextLines = 1

	// Watch defaults
	DefaultWatchDebounce   = 100 * time.Millisecond
	DefaultWatchSkipHidden = true

	// History defaults
	DefaultHistoryEnabled           = false
	DefaultHistoryBackend           = "sqlite"
	DefaultHistoryPath              = "data/history.db"
	DefaultHistoryBusyTimeout       = 5 * time.Second
	DefaultHistoryRetentionDays     = 30
	DefaultHistoryRetentionSchedule = "0 3 * * *"
	DefaultHistoryRetentionMax      = int64(0)

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsEnabled     = true
	DefaultPrometheusPath     = "/metrics"
	DefaultMetricsNamespace   = "stencil"
	DefaultMetricsSubsystem   = "parser"
	DefaultTracingEnabled     = false
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingExporter    = "otlp"
	DefaultTracingServiceName = "stencil"
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultLintExtensions are the template file extensions linted by default.
var DefaultLintExtensions = []string{".tmpl", ".tpl", ".mustache"}

// DefaultDurationBuckets are the parse duration histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

// Default returns a configuration with every default applied, including
// the boolean defaults that ApplyDefaults cannot tell apart from an explicit
// false. LoadConfig decodes files on top of it.
func Default() *Config {
	cfg := &Config{}
	cfg.Watch.SkipHidden = DefaultWatchSkipHidden
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.OTLP.Insecure = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}
	if cfg.Parser.MaxNodes == 0 {
		cfg.Parser.MaxNodes = DefaultParserMaxNodes
	}

	// Lint defaults
	if len(cfg.Lint.Extensions) == 0 {
		cfg.Lint.Extensions = append([]string(nil), DefaultLintExtensions...)
	}
	if cfg.Lint.MaxFileSize == 0 {
		cfg.Lint.MaxFileSize = DefaultLintMaxFileSize
	}
	if cfg.Lint.ContextLines == 0 {
		cfg.Lint.ContextLines = DefaultLintContextLines
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultHistoryRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Exporter == "" {
		cfg.Telemetry.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
