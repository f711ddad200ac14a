package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Stencil - nested-interpolation template parser and linter",
	Long: `Stencil parses templates whose variables may nest inside other variables,
such as "Config: {{service.{{env}}.port}}", into a syntax tree.

It provides:
  - Bounded parsing with configurable depth and node limits
  - Precise errors with byte offsets, line and column, and source excerpts
  - Linting of template trees, once or continuously on change
  - A lint history with automatic retention
  - Structured logs, Prometheus metrics and OpenTelemetry traces`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "stencil.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse events at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// loadConfig installs the configuration for every subcommand. A missing
// default config file is not an error; a missing explicit one is.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	if err := config.Initialize(path); err != nil {
		return cli.NewConfigError("--config", err.Error())
	}

	if verbose {
		cfg := *config.Current()
		cfg.Telemetry.Logging.Level = "debug"
		config.SetConfig(&cfg)
	}
	return nil
}
