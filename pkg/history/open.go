package history

import (
	"fmt"
	"os"
	"path/filepath"

	"mercator-hq/stencil/pkg/config"
)

// Open creates the backend selected by cfg. The SQLite database directory
// is created if needed.
func Open(cfg config.HistoryConfig) (Storage, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, NewStorageError("sqlite", "open", err)
			}
		}
		return NewSQLiteStorage(SQLiteConfig{Path: cfg.Path, BusyTimeout: cfg.BusyTimeout})
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
