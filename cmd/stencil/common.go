package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/telemetry"
	"mercator-hq/stencil/pkg/tmpl"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

// stdinName labels templates read from standard input.
const stdinName = "<stdin>"

// readInput reads the template named by args[0], or stdin when there is no
// argument or the argument is "-".
func readInput(cmd *cobra.Command, args []string, maxSize int64) (name, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		if maxSize <= 0 {
			maxSize = tmpl.DefaultMaxFileSize
		}
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxSize+1))
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if int64(len(data)) > maxSize {
			return "", "", fmt.Errorf("stdin exceeds maximum %d bytes", maxSize)
		}
		return stdinName, string(data), nil
	}

	source, err = tmpl.ReadFile(args[0], maxSize)
	if err != nil {
		return "", "", err
	}
	return args[0], source, nil
}

// limitFlags overrides the configured parser limits for one command.
type limitFlags struct {
	maxDepth    int
	maxNodes    int
	strictClose bool
}

func (f *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum variable nesting depth (default from config)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "maximum number of AST nodes (default from config)")
	cmd.Flags().BoolVar(&f.strictClose, "strict-close", false, `reject "}}" outside any variable`)
}

// resolve applies the flags that were set on top of cfg.
func (f *limitFlags) resolve(cmd *cobra.Command, cfg *config.Config) parser.Config {
	pc := cfg.Parser.ToParser()
	if cmd.Flags().Changed("max-depth") {
		pc.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("max-nodes") {
		pc.MaxNodes = f.maxNodes
	}
	if f.strictClose {
		pc.StrictClose = true
	}
	return pc
}

// newParser builds a parser, reporting invalid limits as a usage error.
func newParser(pc parser.Config, opts ...parser.Option) (*parser.Parser, error) {
	p, err := parser.New(pc, opts...)
	if err != nil {
		var cfgErr *tmplErrors.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, cli.NewConfigError(cfgErr.Field, cfgErr.Message)
		}
		return nil, err
	}
	return p, nil
}

// newTelemetry builds telemetry from the current config, logging to the
// command's stderr.
func newTelemetry(cmd *cobra.Command, cfg *config.Config) (*telemetry.Telemetry, error) {
	tel, err := telemetry.New(&cfg.Telemetry, Version, cmd.ErrOrStderr())
	if err != nil {
		return nil, cli.NewConfigError("telemetry", err.Error())
	}
	return tel, nil
}
