package metrics

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/tmpl/diag"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus metrics for stencil. It manages metric
// registration and exposes a diag.Sink for parse metrics plus recording
// methods for lint runs and history pruning.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse metrics, fed by diag events
	parseMetrics *ParseMetrics

	// Lint metrics
	lintMetrics *LintMetrics

	// Bounds the number of distinct extension labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "stencil",
//		Subsystem: "parser",
//	}
//	collector := metrics.NewCollector(cfg, nil)
//	p := parser.NewParser().WithSink(collector.Sink())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(64),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.lintMetrics = NewLintMetrics(cfg, registry)

	return c
}

// Sink returns a diag.Sink that records parse metrics. It returns diag.Nop
// when metrics are disabled.
func (c *Collector) Sink() diag.Sink {
	if !c.config.Enabled {
		return diag.Nop
	}
	return c.parseMetrics
}

// RecordLint records the outcome of linting one file.
//
// Parameters:
//   - path: template path; only its extension becomes a label
//   - valid: whether the template parsed
func (c *Collector) RecordLint(path string, valid bool) {
	if !c.config.Enabled {
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = "none"
	}
	if !c.cardinalityLimiter.Allow(ext) {
		// Aggregate into "other" to prevent cardinality explosion
		ext = "other"
	}

	result := "valid"
	if !valid {
		result = "invalid"
	}
	c.lintMetrics.filesTotal.WithLabelValues(result, ext).Inc()
}

// RecordLintRun records the duration of a full lint pass.
func (c *Collector) RecordLintRun(duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.lintMetrics.runDuration.Observe(duration.Seconds())
}

// RecordPruned records history records removed by retention.
func (c *Collector) RecordPruned(n int64) {
	if !c.config.Enabled || n <= 0 {
		return
	}
	c.lintMetrics.prunedTotal.Add(float64(n))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether label is already tracked or still fits under the
// limit, tracking it in the latter case.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
