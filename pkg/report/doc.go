// Package report records the outcome of validation runs.
//
// A Report carries a run ID, the validated model files, the EDM version, the
// timing and every finding. Reports are kept in a Storage backend: the
// storage package provides an in-memory store for tests and a SQLite store
// that runs on either github.com/mattn/go-sqlite3 (driver "sqlite3") or the
// pure Go modernc.org/sqlite (driver "sqlite"). The retention package prunes
// old reports on a cron schedule.
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Driver: "sqlite3",
//	    Path:   "data/reports.db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	started := time.Now()
//	stats := v.Run(model)
//	err = store.Store(ctx, report.New("models/sales.yaml", v.Version(), started, stats))
package report
