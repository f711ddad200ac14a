// Package logging provides structured logging for stencil.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with parse IDs and template sources
//   - A diag.Sink that reports parse events through the logger
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx := logging.WithParseID(ctx, logging.NewParseID())
//	ctx = logging.WithSource(ctx, "templates/welcome.tmpl")
//	logger.InfoContext(ctx, "template checked", "nodes", 12)
//
// # Parse Events
//
//	p := parser.NewParser().WithSink(logging.NewSink(ctx, logger))
//
// Failed parses are logged at info with kind, offset and, for limit
// errors, the configured limit. Everything else is logged at debug.
//
// Logs go to stderr by default.
package logging
