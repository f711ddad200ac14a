// Package diag carries optional parse diagnostics.
//
// A parser reports structural events (nesting entered and exited, nodes
// emitted, parse finished or failed) to an injected Sink. Sinks observe;
// they never change what the parser returns. Adapters for slog, Prometheus
// and OpenTelemetry live under pkg/telemetry; Recorder is meant for tests.
package diag
