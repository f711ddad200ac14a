package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/history"
	"mercator-hq/stencil/pkg/history/retention"
)

var historyFlags struct {
	source string
	failed bool
	passed bool
	since  time.Duration
	limit  int
	prune  bool
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint results",
	Long: `List lint results recorded by "stencil lint --record" or "stencil watch --record",
newest first.

Examples:
  # Last 20 failures
  stencil history --failed --limit 20

  # One template over the last day, as JSON
  stencil history --source templates/page.tmpl --since 24h --format json

  # Apply the retention policy now
  stencil history --prune`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.source, "source", "", "only show this template path")
	historyCmd.Flags().BoolVar(&historyFlags.failed, "failed", false, "only show failed lints")
	historyCmd.Flags().BoolVar(&historyFlags.passed, "passed", false, "only show passed lints")
	historyCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only show records newer than this (e.g. 24h)")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "maximum number of records (0 for all)")
	historyCmd.Flags().BoolVar(&historyFlags.prune, "prune", false, "apply the retention policy and exit")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyCmd.MarkFlagsMutuallyExclusive("failed", "passed")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Current()

	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	if historyFlags.prune {
		deleted, err := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention)).Prune(cmd.Context())
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		cli.NewPrinter(cmd.OutOrStdout(), noColor).Success("pruned %d record(s)", deleted)
		return nil
	}

	records, err := store.Query(cmd.Context(), historyQuery(time.Now()))
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), historyTable(records))
	}

	printer := cli.NewPrinter(cmd.OutOrStdout(), noColor)
	if len(records) == 0 {
		printer.Plain("No records found")
		return nil
	}
	for _, r := range records {
		stamp := r.RecordedAt.Local().Format(time.DateTime)
		if r.Valid {
			printer.Success("%s %s (%d nodes, depth %d)", stamp, r.Source, r.Nodes, r.Depth)
		} else {
			printer.Failure("%s %s [%s] %s", stamp, r.Source, r.ErrorKind, r.Message)
		}
	}
	return nil
}

func historyQuery(now time.Time) *history.Query {
	q := &history.Query{
		Source: historyFlags.source,
		Limit:  historyFlags.limit,
	}
	switch {
	case historyFlags.failed:
		q.Valid = new(bool)
	case historyFlags.passed:
		valid := true
		q.Valid = &valid
	}
	if historyFlags.since > 0 {
		since := now.Add(-historyFlags.since)
		q.Since = &since
	}
	return q
}

// historyTable renders records for the json and csv formats.
type historyTable []*history.Record

func (t historyTable) Header() []string {
	return []string{"recorded_at", "source", "valid", "error_kind", "error_offset", "nodes", "depth", "content_hash", "message"}
}

func (t historyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.RecordedAt.Format(time.RFC3339),
			r.Source,
			strconv.FormatBool(r.Valid),
			r.ErrorKind,
			strconv.Itoa(r.ErrorOffset),
			strconv.Itoa(r.Nodes),
			strconv.Itoa(r.Depth),
			r.ContentHash,
			r.Message,
		})
	}
	return rows
}
