// Package telemetry wires logging, metrics and tracing for stencil.
//
// # Components
//
//   - logging: structured slog logging and a parse-event log sink
//   - metrics: Prometheus parse and lint metrics
//   - tracing: OpenTelemetry spans around parses and lint runs
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, version, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	p := parser.NewParser().WithSink(tel.ParserSink(ctx))
//	doc, err := tracing.Parse(ctx, tel.Tracer(), p, path, input)
//
// Every sink only observes; attaching telemetry never changes what a parse
// returns.
package telemetry
