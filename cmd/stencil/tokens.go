package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/cli"
	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/tmpl/scanner"
)

var tokensFlags struct {
	format string
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the scanner tokens of a template",
	Long: `Print the lexical tokens of a template without validating its structure.

Each line shows the token position, kind and text. Useful for checking how
whitespace, separators and stray characters are split.

Examples:
  stencil tokens page.tmpl
  echo '{{ a .b }}' | stencil tokens --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&tokensFlags.format, "format", "text", "output format: text, json")
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg := config.Current()

	format, err := cli.ParseFormat(tokensFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	_, source, err := readInput(cmd, args, cfg.Lint.MaxFileSize)
	if err != nil {
		return cli.NewCommandError("tokens", err)
	}

	toks := scanner.Tokens(source)
	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), toks)
	}
	for _, t := range toks {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}
