// Package metrics provides Prometheus metrics for stencil.
//
// # Overview
//
// Parse metrics are fed by parser diagnostics: the Collector's Sink is
// attached to a parser and counts outcomes, error kinds, durations, node
// counts and nesting depth. Lint and history metrics are recorded directly
// by the commands.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	p := parser.NewParser().WithSink(collector.Sink())
//
//	// Expose /metrics while watching
//	go collector.Serve(ctx, "127.0.0.1:9090")
//
// # Metrics
//
// All names carry the configured namespace and subsystem (default
// "stencil_parser_"):
//
//	parses_total{outcome}          ok or error
//	errors_total{kind}             one series per error kind
//	duration_seconds               parse duration
//	nodes                          nodes per successful parse
//	nesting_entered_total{depth}   variables entered, bucketed by depth
//	max_depth_observed             deepest nesting seen
//	lint_files_total{result,extension}
//	lint_run_duration_seconds
//	history_pruned_total
package metrics
