package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/history"
	"mercator-hq/stencil/pkg/history/retention"
	"mercator-hq/stencil/pkg/lint"
	"mercator-hq/stencil/pkg/telemetry"
	"mercator-hq/stencil/pkg/watch"
)

var watchFlags struct {
	dirs        []string
	metricsAddr string
	record      bool
	limits      limitFlags
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-lint templates whenever they change",
	Long: `Lint every template under the given directories, then keep watching
them and re-lint each file as it is written. Bursts of writes are debounced
(watch.debounce in the config).

With --metrics-addr the Prometheus endpoint is served for as long as the
watch runs. With --record each result is stored in the lint history and the
retention schedule runs in the background.

Examples:
  stencil watch --dir templates/
  stencil watch --dir templates/ --metrics-addr :9090 --record`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(&watchFlags.dirs, "dir", "d", []string{"."}, "directory to watch (repeatable)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	watchCmd.Flags().BoolVar(&watchFlags.record, "record", false, "record results in the lint history")
	watchFlags.limits.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Current()
	ctx := cmd.Context()

	tel, err := newTelemetry(cmd, cfg)
	if err != nil {
		return err
	}
	defer tel.Shutdown(context.Background())
	logger := tel.Logger()

	p, err := newParser(watchFlags.limits.resolve(cmd, cfg))
	if err != nil {
		return err
	}
	l := lint.New(p, cfg.Lint, linterOptions(tel, cfg)...)

	addr := watchFlags.metricsAddr
	if addr == "" {
		addr = cfg.Telemetry.Metrics.ListenAddress
	}
	if addr != "" {
		go func() {
			if err := tel.Metrics().Serve(ctx, addr); err != nil {
				logger.Error("metrics server failed", "addr", addr, "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", addr, "path", cfg.Telemetry.Metrics.Path)
	}

	var recorder *history.Recorder
	if watchFlags.record || cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
		recorder = history.NewRecorder(store)

		pruner := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention))
		pruner.OnPruned = tel.Metrics().RecordPruned
		if err := pruner.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer pruner.Stop()
	}

	w, err := watch.New(watch.FromConfig(watchFlags.dirs, cfg.Watch, cfg.Lint), logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	printer := cli.NewPrinter(cmd.OutOrStdout(), noColor)
	report := func(results []lint.Result) {
		reportWatchResults(ctx, tel, recorder, printer, results)
	}

	err = watch.Run(ctx, w, l, report)
	if err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

func reportWatchResults(ctx context.Context, tel *telemetry.Telemetry, recorder *history.Recorder, printer *cli.Printer, results []lint.Result) {
	start := time.Now()
	observeResults(tel, results)
	printLintResults(printer, results)

	if recorder != nil {
		if err := recorder.RecordResults(ctx, results); err != nil {
			tel.Logger().Error("failed to record lint history", "error", err)
		}
	}
	tel.Metrics().RecordLintRun(time.Since(start))
}
