// Package storage provides report.Storage backends.
//
// SQLiteStorage works with either SQLite driver registered by this package:
// "sqlite3" (github.com/mattn/go-sqlite3, cgo) and "sqlite"
// (modernc.org/sqlite, pure Go). Both share one schema; see Schema.
// MemoryStorage keeps reports in a map and is meant for tests.
package storage
