package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/telemetry/logging"
	"mercator-hq/stencil/pkg/telemetry/metrics"
	"mercator-hq/stencil/pkg/telemetry/tracing"
	"mercator-hq/stencil/pkg/tmpl/diag"
)

// Telemetry bundles the logger, metrics collector and tracer built from one
// telemetry config section.
type Telemetry struct {
	logger    *logging.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
}

// New builds all telemetry components. Log lines go to w.
func New(cfg *config.TelemetryConfig, version string, w io.Writer) (*Telemetry, error) {
	if cfg == nil {
		return nil, errors.New("telemetry config is nil")
	}

	logger, err := logging.New(logging.FromConfig(cfg.Logging, w))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	return &Telemetry{
		logger:    logger,
		collector: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:    tracer,
	}, nil
}

// Logger returns the logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.collector }

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// ParserSink returns a sink that logs parse events with the context fields
// of ctx and records metrics. Spans are attached per parse by tracing.Parse.
func (t *Telemetry) ParserSink(ctx context.Context) diag.Sink {
	return diag.Multi(logging.NewSink(ctx, t.logger), t.collector.Sink())
}

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
