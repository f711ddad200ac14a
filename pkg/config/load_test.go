package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "stencil.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := writeConfig(t, `
parser:
  max_depth: 8
  max_nodes: 1000
  strict_close: true

lint:
  extensions: [".tmpl", ".txt"]
  context_lines: 2

watch:
  debounce: "250ms"

history:
  enabled: true
  path: "./history.db"
  retention:
    days: 14
    max_records: 5000

telemetry:
  logging:
    level: "debug"
    format: "console"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 8 || cfg.Parser.MaxNodes != 1000 || !cfg.Parser.StrictClose {
		t.Errorf("unexpected parser section: %+v", cfg.Parser)
	}
	if len(cfg.Lint.Extensions) != 2 || cfg.Lint.Extensions[1] != ".txt" {
		t.Errorf("unexpected extensions: %v", cfg.Lint.Extensions)
	}
	if cfg.Lint.ContextLines != 2 {
		t.Errorf("expected context lines 2, got %d", cfg.Lint.ContextLines)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if !cfg.History.Enabled || cfg.History.Path != "./history.db" {
		t.Errorf("unexpected history section: %+v", cfg.History)
	}
	if cfg.History.Retention.Days != 14 || cfg.History.Retention.MaxRecords != 5000 {
		t.Errorf("unexpected retention: %+v", cfg.History.Retention)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}

	// Untouched sections keep their defaults
	if cfg.History.Retention.Schedule != DefaultHistoryRetentionSchedule {
		t.Errorf("expected default schedule, got %q", cfg.History.Retention.Schedule)
	}
	if !cfg.Watch.SkipHidden {
		t.Error("expected skip_hidden default to survive loading")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics default to survive loading")
	}
}

func TestLoadConfig_ExplicitFalse(t *testing.T) {
	configPath := writeConfig(t, `
watch:
  skip_hidden: false
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Watch.SkipHidden {
		t.Error("expected explicit skip_hidden: false to be kept")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected explicit metrics.enabled: false to be kept")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "parser: [",
			wantErr: "failed to parse configuration file",
		},
		{
			name:    "negative depth",
			content: "parser:\n  max_depth: -1\n",
			wantErr: "parser.max_depth",
		},
		{
			name:    "bad cron",
			content: "history:\n  retention:\n    schedule: \"every day\"\n",
			wantErr: "history.retention.schedule",
		},
		{
			name:    "bad level",
			content: "telemetry:\n  logging:\n    level: \"loud\"\n",
			wantErr: "telemetry.logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_ValidationErrorType(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "parser:\n  max_depth: -1\n  max_nodes: -1\n"))

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, "parser:\n  max_depth: 8\n")

	t.Setenv("STENCIL_PARSER_MAX_DEPTH", "3")
	t.Setenv("STENCIL_PARSER_STRICT_CLOSE", "true")
	t.Setenv("STENCIL_LINT_EXTENSIONS", ".a, .b")
	t.Setenv("STENCIL_WATCH_DEBOUNCE", "2s")
	t.Setenv("STENCIL_HISTORY_BACKEND", "memory")
	t.Setenv("STENCIL_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("STENCIL_TELEMETRY_TRACING_SAMPLE_RATIO", "0.5")
	t.Setenv("STENCIL_PARSER_MAX_NODES", "not-a-number")

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 3 {
		t.Errorf("expected env max depth 3, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Parser.StrictClose {
		t.Error("expected strict close from env")
	}
	if cfg.Parser.MaxNodes != DefaultParserMaxNodes {
		t.Errorf("unparsable override should be ignored, got %d", cfg.Parser.MaxNodes)
	}
	if strings.Join(cfg.Lint.Extensions, ",") != ".a,.b" {
		t.Errorf("unexpected extensions %v", cfg.Lint.Extensions)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.History.Backend)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.5 {
		t.Errorf("expected sample ratio 0.5, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("STENCIL_PARSER_MAX_NODES", "64")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Parser.MaxNodes != 64 {
		t.Errorf("expected max nodes 64, got %d", cfg.Parser.MaxNodes)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("STENCIL_PARSER_MAX_DEPTH", "0")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected validation failure after overrides, got %v", err)
	}
}
