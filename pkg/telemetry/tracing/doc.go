// Package tracing provides OpenTelemetry tracing for template parses.
//
// # Overview
//
// Each parse can run under a span named "stencil.parse". A SpanSink attached
// to the parser turns diagnostics events into span attributes: input size,
// node count and maximum nesting depth on success, or the error kind,
// offset and violated limit on failure. Lint runs wrap their per-file parse
// spans in a parent span.
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// All strategies respect the parent span's decision.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	doc, err := tracing.Parse(ctx, tracer, p, "page.tmpl", input)
//
// # Export
//
// Spans are exported over OTLP gRPC. The connection is established lazily
// and exports are batched, so an absent collector never slows a parse.
package tracing
