package metrics

import (
	"sync"

	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/tmpl/diag"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks parser metrics. It implements diag.Sink and may be
// shared by parsers running concurrently.
//
// Metrics:
//   - stencil_parser_parses_total: Parses by outcome (ok, error)
//   - stencil_parser_errors_total: Failed parses by error kind
//   - stencil_parser_duration_seconds: Parse duration
//   - stencil_parser_nodes: Nodes per successful parse
//   - stencil_parser_nesting_entered_total: Variables entered, by depth
//   - stencil_parser_max_depth_observed: Deepest nesting seen
type ParseMetrics struct {
	parsesTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	duration       prometheus.Histogram
	nodes          prometheus.Histogram
	nestingEntered *prometheus.CounterVec
	maxDepth       prometheus.Gauge

	mu      sync.Mutex
	deepest int
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of template parses by outcome",
			},
			[]string{"outcome"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed parses by error kind",
			},
			[]string{"kind"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of template parses in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "nodes",
				Help:      "Number of AST nodes per successful parse",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
			},
		),

		nestingEntered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "nesting_entered_total",
				Help:      "Total number of variables entered, by nesting depth",
			},
			[]string{"depth"},
		),

		maxDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "max_depth_observed",
				Help:      "Deepest variable nesting seen since start",
			},
		),
	}

	// Pre-create the error kinds so they export as zero
	for _, kind := range tmplErrors.Kinds {
		pm.errorsTotal.WithLabelValues(string(kind))
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.errorsTotal,
		pm.duration,
		pm.nodes,
		pm.nestingEntered,
		pm.maxDepth,
	)

	return pm
}

// Record implements diag.Sink.
func (pm *ParseMetrics) Record(e diag.Event) {
	switch e.Kind {
	case diag.EventParseFinished:
		pm.parsesTotal.WithLabelValues("ok").Inc()
		pm.duration.Observe(e.Elapsed.Seconds())
		pm.nodes.Observe(float64(e.Nodes))

	case diag.EventParseFailed:
		pm.parsesTotal.WithLabelValues("error").Inc()
		pm.duration.Observe(e.Elapsed.Seconds())
		if kind := tmplErrors.KindOf(e.Err); kind != "" {
			pm.errorsTotal.WithLabelValues(string(kind)).Inc()
		}

	case diag.EventNestingEntered:
		pm.nestingEntered.WithLabelValues(depthLabel(e.Depth)).Inc()
		pm.observeDepth(e.Depth)
	}
}

func (pm *ParseMetrics) observeDepth(depth int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if depth > pm.deepest {
		pm.deepest = depth
		pm.maxDepth.Set(float64(depth))
	}
}

// depthLabel buckets depths so the label set stays small.
func depthLabel(depth int) string {
	switch {
	case depth <= 1:
		return "1"
	case depth == 2:
		return "2"
	case depth <= 4:
		return "3-4"
	case depth <= 8:
		return "5-8"
	}
	return "9+"
}

// LintMetrics tracks lint runs.
//
// Metrics:
//   - stencil_parser_lint_files_total: Files linted by result and extension
//   - stencil_parser_lint_run_duration_seconds: Duration of a lint pass
//   - stencil_parser_history_pruned_total: History records removed by retention
type LintMetrics struct {
	filesTotal  *prometheus.CounterVec
	runDuration prometheus.Histogram
	prunedTotal prometheus.Counter
}

// NewLintMetrics creates and registers lint metrics with the provided registry.
func NewLintMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LintMetrics {
	lm := &LintMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_files_total",
				Help:      "Total number of template files linted",
			},
			[]string{"result", "extension"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lint_run_duration_seconds",
				Help:      "Duration of a lint pass over all paths in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to 16s
			},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of lint history records removed by retention",
			},
		),
	}

	registry.MustRegister(
		lm.filesTotal,
		lm.runDuration,
		lm.prunedTotal,
	)

	return lm
}
