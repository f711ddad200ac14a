// Package lint checks template files for parse errors.
//
// A Linter parses each template with a shared parser and reports one Result
// per file: whether it parsed, its node count and nesting depth, the paths
// of its top-level variables, and any error with a source excerpt. The CLI
// lint command, watch mode and the history recorder all consume Results.
//
//	l := lint.New(p, cfg.Lint)
//	results, err := l.LintPaths(ctx, []string{"templates/"})
//	if err != nil {
//	    return err
//	}
//	summary := lint.Summarize(results)
package lint
