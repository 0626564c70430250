package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/OData/odata.net-sub135/pkg/report"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver selects the database/sql driver: "sqlite3" or "sqlite".
	// Default: "sqlite3"
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       DriverCGO,
		Path:         "data/reports.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements report.Storage on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database and creates the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverCGO
	}
	if config.Driver != DriverCGO && config.Driver != DriverPureGo {
		return nil, report.NewStorageError(config.Driver, "open",
			fmt.Errorf("unsupported driver %q (want %q or %q)", config.Driver, DriverCGO, DriverPureGo))
	}

	logger := slog.Default().With("component", "report.storage.sqlite", "driver", config.Driver)

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, report.NewStorageError(config.Driver, "open", err)
	}
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return s.storageError("enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return s.storageError("set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return s.storageError("create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return s.storageError("insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s.storageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return s.storageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Store persists a report.
func (s *SQLiteStorage) Store(ctx context.Context, r *report.Report) error {
	findings, err := json.Marshal(r.Findings)
	if err != nil {
		return s.storageError("store", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO reports ("+reportColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.ModelPath, r.Version,
		r.StartedAt.UnixNano(), int64(r.Duration),
		boolToInt(r.Valid), boolToInt(r.Critical), r.ErrorCount, r.Visited,
		string(findings),
	)
	if err != nil {
		return s.storageError("store", err)
	}
	return nil
}

// Get returns the report with id.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*report.Report, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+reportColumns+" FROM reports WHERE id = ?", id)
	if err != nil {
		return nil, s.storageError("get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, s.storageError("get", err)
		}
		return nil, report.ErrNotFound
	}
	r, err := scanRow(rows)
	if err != nil {
		return nil, s.storageError("scan", err)
	}
	return r, nil
}

// Query retrieves reports matching the query filters, newest first unless
// the query asks for ascending order. At most 100 reports are returned when
// the query sets no limit.
func (s *SQLiteStorage) Query(ctx context.Context, query *report.Query) ([]*report.Report, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + reportColumns + " FROM reports"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	sortOrder := "DESC"
	if strings.EqualFold(query.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY started_at %s, id %s", sortOrder, sortOrder)

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, s.storageError("query", err)
	}
	defer rows.Close()

	reports := []*report.Report{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, s.storageError("scan", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageError("query", err)
	}
	return reports, nil
}

// Count returns the number of reports matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *report.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM reports"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, s.storageError("count", err)
	}
	return count, nil
}

// Delete removes reports matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *report.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM reports"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, s.storageError("delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, s.storageError("delete", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return s.storageError("close", err)
	}
	s.logger.Info("SQLite storage closed")
	return nil
}

func (s *SQLiteStorage) storageError(operation string, err error) error {
	return report.NewStorageError(s.config.Driver, operation, err)
}

// buildWhereClause returns the WHERE clause (without the keyword) and its
// arguments.
func buildWhereClause(query *report.Query) (string, []any) {
	var conditions []string
	var args []any

	if query.StartTime != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, query.EndTime.UnixNano())
	}
	if query.ModelPath != "" {
		conditions = append(conditions, "model_path = ?")
		args = append(args, query.ModelPath)
	}
	if query.Valid != nil {
		conditions = append(conditions, "valid = ?")
		args = append(args, boolToInt(*query.Valid))
	}
	if query.Code != "" {
		conditions = append(conditions, "findings LIKE ?")
		args = append(args, `%"code":"`+query.Code+`"%`)
	}

	return strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*report.Report, error) {
	var r report.Report
	var startedAt, duration int64
	var valid, critical int
	var findings sql.NullString

	err := rows.Scan(
		&r.ID, &r.ModelPath, &r.Version,
		&startedAt, &duration,
		&valid, &critical, &r.ErrorCount, &r.Visited,
		&findings,
	)
	if err != nil {
		return nil, err
	}

	r.StartedAt = time.Unix(0, startedAt)
	r.Duration = time.Duration(duration)
	r.Valid = valid != 0
	r.Critical = critical != 0
	r.Findings = []report.Finding{}
	if findings.Valid && findings.String != "" {
		if err := json.Unmarshal([]byte(findings.String), &r.Findings); err != nil {
			return nil, fmt.Errorf("decode findings of %s: %w", r.ID, err)
		}
	}
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
