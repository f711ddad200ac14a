package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mercator-hq/stencil/pkg/config"
)

// newTestCommand returns a command whose output is captured in out and
// whose logs are discarded.
func newTestCommand(t *testing.T, stdin string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, out
}

// useConfig installs cfg for the duration of the test.
func useConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()

	cfg := config.Default()
	cfg.Telemetry.Logging.Level = "error"
	if mutate != nil {
		mutate(cfg)
	}
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
}

func writeTemplate(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
