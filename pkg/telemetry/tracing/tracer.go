package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"

	"mercator-hq/stencil/pkg/config"
)

// instrumentationName names the tracer that emits stencil spans.
const instrumentationName = "mercator-hq/stencil"

// Tracer starts parse and lint spans. A disabled Tracer hands out
// non-recording spans, so callers never need to check Enabled first.
type Tracer struct {
	tracer   trace.Tracer
	enabled  bool
	shutdown func(context.Context) error
}

// New builds a Tracer from cfg. When tracing is enabled spans are batched
// to an OTLP gRPC collector at cfg.Endpoint; the connection is made on the
// first export, so an unreachable collector does not fail New.
//
// Call Shutdown before exit to flush buffered spans.
func New(cfg *config.TracingConfig, version string) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}
	if !cfg.Enabled {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}

	provider, err := newProvider(cfg, version)
	if err != nil {
		return nil, err
	}
	return &Tracer{
		tracer:   provider.Tracer(instrumentationName),
		enabled:  true,
		shutdown: provider.Shutdown,
	}, nil
}

// NewWithProvider returns an enabled Tracer on top of provider, which stays
// owned by the caller.
func NewWithProvider(provider trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer:  provider.Tracer(instrumentationName),
		enabled: true,
	}
}

func newProvider(cfg *config.TracingConfig, version string) (*sdktrace.TracerProvider, error) {
	sampler, err := createSampler(cfg.Sampler, cfg.SampleRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	if cfg.Exporter != "" && cfg.Exporter != "otlp" {
		return nil, fmt.Errorf("unsupported exporter: %s", cfg.Exporter)
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.OTLP.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if cfg.OTLP.Timeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.OTLP.Timeout))
	}
	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	), nil
}

// Start opens a span as a child of any span already in ctx.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes buffered spans. It is a no-op for disabled tracers and
// tracers built with NewWithProvider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.shutdown == nil {
		return nil
	}
	return t.shutdown(ctx)
}

// Enabled reports whether spans are exported.
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// TraceID returns the hex trace ID of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// Finish sets the span status from err. A non-nil err is also recorded as
// a span event with the error.message attribute. Finish does not end the span.
func Finish(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorMsg, err.Error()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
