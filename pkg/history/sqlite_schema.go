package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the lint history tables.
const Schema = `
CREATE TABLE IF NOT EXISTS lint_history (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    valid BOOLEAN NOT NULL,
    error_kind TEXT,
    error_offset INTEGER,
    message TEXT,
    bytes INTEGER NOT NULL,
    nodes INTEGER NOT NULL,
    depth INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lint_history_recorded_at ON lint_history(recorded_at);
CREATE INDEX IF NOT EXISTS idx_lint_history_source ON lint_history(source, recorded_at);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

// GetSchemaVersion returns the highest recorded schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version`
