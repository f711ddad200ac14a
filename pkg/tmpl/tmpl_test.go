package tmpl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.tmpl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		maxSize int64
		wantErr string
	}{
		{
			name:    "ok",
			path:    func(t *testing.T) string { return writeTemplate(t, "Hello {{name}}") },
			maxSize: 0,
		},
		{
			name:    "too large",
			path:    func(t *testing.T) string { return writeTemplate(t, strings.Repeat("x", 64)) },
			maxSize: 16,
			wantErr: "exceeds maximum 16 bytes",
		},
		{
			name:    "missing",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.tmpl") },
			wantErr: "failed to access template",
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path(t), tt.maxSize)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ReadFile() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	p := parser.NewParser()

	doc, source, err := ParseFile(p, writeTemplate(t, "Config: {{service.{{env}}.port}}"), 0)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if source != doc.String() {
		t.Errorf("source %q does not round-trip, got %q", source, doc.String())
	}

	_, source, err = ParseFile(p, writeTemplate(t, "bad {{x"), 0)
	if !errors.Is(err, tmplErrors.ErrUnterminatedDelimiter) {
		t.Errorf("ParseFile() error = %v, want unterminated_delimiter", err)
	}
	if source != "bad {{x" {
		t.Errorf("source = %q, want the file contents", source)
	}
}

func TestParseWithConfig_Invalid(t *testing.T) {
	_, err := ParseWithConfig("{{a}}", parser.Config{MaxDepth: 0, MaxNodes: 10})
	if !errors.Is(err, tmplErrors.ErrInvalidConfig) {
		t.Errorf("ParseWithConfig() error = %v, want ErrInvalidConfig", err)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic")
		}
	}()
	MustParse("{{")
}
