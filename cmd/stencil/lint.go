package main

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/history"
	"mercator-hq/stencil/pkg/lint"
	"mercator-hq/stencil/pkg/telemetry"
)

var lintFlags struct {
	files    []string
	dirs     []string
	format   string
	record   bool
	progress bool
	limits   limitFlags
}

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Validate template files",
	Long: `Validate templates for syntax errors and limit violations.

Files named with --file or as arguments are always linted. Directories named
with --dir or as arguments are walked recursively for files with a template
extension (lint.extensions in the config, .tmpl .tpl .mustache by default).

The exit status is 1 if any template fails to parse.

Examples:
  # Lint single file
  stencil lint --file page.tmpl

  # Lint directory
  stencil lint --dir templates/

  # Treat a stray "}}" as an error
  stencil lint --dir templates/ --strict-close

  # JSON output for CI/CD, recorded in the lint history
  stencil lint --dir templates/ --format json --record`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringSliceVarP(&lintFlags.files, "file", "f", nil, "template file to validate (repeatable)")
	lintCmd.Flags().StringSliceVarP(&lintFlags.dirs, "dir", "d", nil, "directory of templates (repeatable)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, csv")
	lintCmd.Flags().BoolVar(&lintFlags.record, "record", false, "record results in the lint history")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show a progress bar on stderr")
	lintFlags.limits.register(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg := config.Current()

	paths := append(append(append([]string(nil), lintFlags.files...), lintFlags.dirs...), args...)
	if len(paths) == 0 {
		return cli.NewConfigError("--file", "either --file, --dir or a path argument must be specified")
	}

	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}

	tel, err := newTelemetry(cmd, cfg)
	if err != nil {
		return err
	}
	defer tel.Shutdown(cmd.Context())

	p, err := newParser(lintFlags.limits.resolve(cmd, cfg))
	if err != nil {
		return err
	}

	opts := linterOptions(tel, cfg)
	var bar *cli.ProgressBar
	if lintFlags.progress && format == cli.FormatText {
		bar = cli.NewProgressBar(cmd.ErrOrStderr(), "Linting")
		opts = append(opts, lint.WithProgress(bar.Observe))
	}
	l := lint.New(p, cfg.Lint, opts...)

	start := time.Now()
	results, err := l.LintPaths(cmd.Context(), paths)
	if err != nil {
		if bar != nil {
			bar.Abort(err)
		}
		return cli.NewCommandError("lint", err)
	}
	observeResults(tel, results)
	tel.Metrics().RecordLintRun(time.Since(start))

	if lintFlags.record || cfg.History.Enabled {
		if err := recordResults(cmd.Context(), cfg, results); err != nil {
			return cli.NewCommandError("lint", err)
		}
	}

	if err := writeLintResults(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	if lint.Summarize(results).Invalid > 0 {
		return cli.NewCommandError("lint", cli.ErrLintFailed)
	}
	return nil
}

// linterOptions wires telemetry and walk settings into a Linter.
func linterOptions(tel *telemetry.Telemetry, cfg *config.Config) []lint.Option {
	return []lint.Option{
		lint.WithSinkFactory(tel.ParserSink),
		lint.WithTracer(tel.Tracer()),
		lint.WithLogger(tel.Logger().Slog()),
		lint.WithSkipHidden(cfg.Watch.SkipHidden),
	}
}

func observeResults(tel *telemetry.Telemetry, results []lint.Result) {
	for _, r := range results {
		tel.Metrics().RecordLint(r.File, r.Valid)
	}
}

func recordResults(ctx context.Context, cfg *config.Config, results []lint.Result) error {
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()
	return history.NewRecorder(store).RecordResults(ctx, results)
}

// lintReport is the JSON and CSV shape of a lint run.
type lintReport struct {
	Results []lint.Result `json:"results"`
	Summary lint.Summary  `json:"summary"`
}

func (r lintReport) Header() []string {
	return []string{"file", "valid", "nodes", "depth", "error_kind", "offset", "line", "column", "message"}
}

func (r lintReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		row := []string{res.File, strconv.FormatBool(res.Valid), strconv.Itoa(res.Nodes), strconv.Itoa(res.Depth), "", "", "", "", ""}
		if issue := res.FirstError(); issue != nil {
			row[4] = issue.Kind
			row[5] = strconv.Itoa(issue.Offset)
			row[6] = strconv.Itoa(issue.Line)
			row[7] = strconv.Itoa(issue.Column)
			row[8] = issue.Message
		}
		rows = append(rows, row)
	}
	return rows
}

func writeLintResults(w io.Writer, format cli.OutputFormat, results []lint.Result) error {
	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(w, lintReport{Results: results, Summary: lint.Summarize(results)})
	}

	printer := cli.NewPrinter(w, noColor)
	printLintResults(printer, results)

	s := lint.Summarize(results)
	printer.Plain("")
	printer.Plain("Summary:")
	printer.Plain("  %d file(s), %d valid, %d invalid", s.Files, s.Valid, s.Invalid)
	return nil
}

func printLintResults(printer *cli.Printer, results []lint.Result) {
	for _, r := range results {
		if r.Valid {
			printer.Success("%s (%d nodes, depth %d)", r.File, r.Nodes, r.Depth)
			continue
		}
		for _, issue := range r.Errors {
			if issue.Line > 0 {
				printer.Failure("%s:%d:%d: [%s] %s", r.File, issue.Line, issue.Column, issue.Kind, issue.Message)
			} else {
				printer.Failure("%s: [%s] %s", r.File, issue.Kind, issue.Message)
			}
			if issue.Context != "" {
				for _, line := range strings.Split(strings.TrimRight(issue.Context, "\n"), "\n") {
					printer.Detail("%s", line)
				}
			}
			if issue.Suggestion != "" {
				printer.Detail("suggestion: %s", issue.Suggestion)
			}
		}
	}
}
