package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the report tables. Timestamps are stored as Unix
// nanoseconds so both SQLite drivers round-trip them identically.
const Schema = `
CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,
    model_path TEXT NOT NULL,
    version TEXT NOT NULL,

    started_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,

    valid INTEGER NOT NULL,
    critical INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    visited INTEGER NOT NULL,
    findings TEXT
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_started_at ON reports(started_at);
CREATE INDEX IF NOT EXISTS idx_reports_model_path ON reports(model_path);
CREATE INDEX IF NOT EXISTS idx_reports_valid ON reports(valid);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const reportColumns = `id, model_path, version, started_at, duration_ns,
	valid, critical, error_count, visited, findings`
