/*
Package cli provides command-line helpers for the stencil command.

Output formatting:

	format, err := cli.ParseFormat(flag, cli.FormatText, cli.FormatJSON)
	if err != nil {
	    return err
	}
	cli.NewFormatter(format).FormatTo(os.Stdout, result)

Coloured status lines:

	p := cli.NewPrinter(os.Stdout, noColor)
	p.Success("%s", path)
	p.Failure("%s: %v", path, err)

Progress reporting for long lint runs:

	bar := cli.NewProgressBar(os.Stderr, "Linting")
	linter := lint.New(p, cfg.Lint, lint.WithProgress(bar.Observe))

Signal handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Errors returned by commands map to exit codes with ExitCode.
*/
package cli
