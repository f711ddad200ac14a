package config

import (
	"path/filepath"
	"testing"
)

func TestInitializeAndCurrent(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	SetConfig(nil)
	if got := Current().Parser.MaxDepth; got != DefaultParserMaxDepth {
		t.Errorf("uninitialized Current() max depth = %d, want default", got)
	}

	if err := Initialize(writeConfig(t, "parser:\n  max_depth: 5\n")); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := Current().Parser.MaxDepth; got != 5 {
		t.Errorf("Current() max depth = %d, want 5", got)
	}

	// A failed reload keeps the previous configuration
	if err := Initialize(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if got := Current().Parser.MaxDepth; got != 5 {
		t.Errorf("Current() after failed Initialize = %d, want 5", got)
	}
}
