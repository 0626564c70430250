package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/OData/odata.net-sub135/pkg/report"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newReport(id, path string, offset time.Duration, codes ...string) *report.Report {
	r := &report.Report{
		ID:         id,
		ModelPath:  path,
		Version:    "4.0",
		StartedAt:  base.Add(offset),
		Duration:   3 * time.Millisecond,
		Valid:      len(codes) == 0,
		ErrorCount: len(codes),
		Visited:    12,
		Findings:   []report.Finding{},
	}
	for _, code := range codes {
		r.Findings = append(r.Findings, report.Finding{
			Code:     code,
			Severity: "Error",
			Message:  "broken",
			Location: path + ":3:5",
		})
	}
	return r
}

func backends(t *testing.T) map[string]func(t *testing.T) report.Storage {
	t.Helper()
	sqlite := func(driver string) func(t *testing.T) report.Storage {
		return func(t *testing.T) report.Storage {
			cfg := DefaultSQLiteConfig()
			cfg.Driver = driver
			cfg.Path = filepath.Join(t.TempDir(), "reports.db")
			s, err := NewSQLiteStorage(cfg)
			if err != nil {
				t.Fatalf("NewSQLiteStorage(%s) error = %v", driver, err)
			}
			return s
		}
	}
	return map[string]func(t *testing.T) report.Storage{
		"memory":  func(*testing.T) report.Storage { return NewMemoryStorage() },
		"sqlite3": sqlite(DriverCGO),
		"sqlite":  sqlite(DriverPureGo),
	}
}

func seed(t *testing.T, s report.Storage) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []*report.Report{
		newReport("a", "sales.yaml", 0),
		newReport("b", "sales.yaml", time.Hour, "KeyMissingOnEntityType"),
		newReport("c", "people.yaml", 2*time.Hour, "BadUnresolvedType", "KeyMissingOnEntityType"),
		newReport("d", "people.yaml", 3*time.Hour),
	} {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store(%s) error = %v", r.ID, err)
		}
	}
}

func ids(reports []*report.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStorage_StoreAndGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			ctx := context.Background()

			want := newReport("r1", "sales.yaml", 0, "BadUnresolvedType")
			want.Findings[0].Suggestion = "Did you mean 'Address'?"
			want.Critical = true
			if err := s.Store(ctx, want); err != nil {
				t.Fatalf("Store() error = %v", err)
			}

			got, err := s.Get(ctx, "r1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !got.StartedAt.Equal(want.StartedAt) {
				t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
			}
			if got.Duration != want.Duration {
				t.Errorf("Duration = %v, want %v", got.Duration, want.Duration)
			}
			if got.Valid || !got.Critical {
				t.Errorf("Valid/Critical = %v/%v, want false/true", got.Valid, got.Critical)
			}
			if got.ErrorCount != 1 || got.Visited != 12 {
				t.Errorf("ErrorCount/Visited = %d/%d, want 1/12", got.ErrorCount, got.Visited)
			}
			if len(got.Findings) != 1 || got.Findings[0] != want.Findings[0] {
				t.Errorf("Findings = %+v, want %+v", got.Findings, want.Findings)
			}
		})
	}
}

func TestStorage_GetMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, err := s.Get(context.Background(), "missing")
			if !errors.Is(err, report.ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorage_Query(t *testing.T) {
	valid := true
	invalid := false
	start := base.Add(time.Hour)
	end := base.Add(2 * time.Hour)

	tests := []struct {
		name  string
		query *report.Query
		want  []string
	}{
		{"all newest first", &report.Query{}, []string{"d", "c", "b", "a"}},
		{"ascending", &report.Query{SortOrder: "asc"}, []string{"a", "b", "c", "d"}},
		{"model path", &report.Query{ModelPath: "sales.yaml"}, []string{"b", "a"}},
		{"valid", &report.Query{Valid: &valid}, []string{"d", "a"}},
		{"invalid", &report.Query{Valid: &invalid}, []string{"c", "b"}},
		{"code", &report.Query{Code: "BadUnresolvedType"}, []string{"c"}},
		{"code in several", &report.Query{Code: "KeyMissingOnEntityType"}, []string{"c", "b"}},
		{"time range inclusive", &report.Query{StartTime: &start, EndTime: &end}, []string{"c", "b"}},
		{"limit", &report.Query{Limit: 2}, []string{"d", "c"}},
		{"offset", &report.Query{Limit: 2, Offset: 3}, []string{"a"}},
		{"offset past end", &report.Query{Offset: 10}, []string{}},
	}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			seed(t, s)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(context.Background(), tt.query)
					if err != nil {
						t.Fatalf("Query() error = %v", err)
					}
					if !equalIDs(ids(got), tt.want) {
						t.Errorf("Query() = %v, want %v", ids(got), tt.want)
					}
				})
			}
		})
	}
}

func TestStorage_CountAndDelete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			seed(t, s)
			ctx := context.Background()

			n, err := s.Count(ctx, &report.Query{ModelPath: "people.yaml"})
			if err != nil || n != 2 {
				t.Fatalf("Count() = %d, %v, want 2", n, err)
			}

			cutoff := base.Add(time.Hour)
			deleted, err := s.Delete(ctx, &report.Query{EndTime: &cutoff})
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if deleted != 2 {
				t.Errorf("Delete() = %d, want 2", deleted)
			}

			n, err = s.Count(ctx, &report.Query{})
			if err != nil || n != 2 {
				t.Errorf("Count() after delete = %d, %v, want 2", n, err)
			}
		})
	}
}

func TestStorage_DuplicateID(t *testing.T) {
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "reports.db")
	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Store(ctx, newReport("dup", "a.yaml", 0)); err != nil {
		t.Fatal(err)
	}
	err = s.Store(ctx, newReport("dup", "a.yaml", 0))

	var storageErr *report.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Store() error = %v, want *StorageError", err)
	}
	if storageErr.Operation != "store" || storageErr.Backend != DriverCGO {
		t.Errorf("StorageError = %+v", storageErr)
	}
}

func TestNewSQLiteStorage_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLiteStorage(&SQLiteConfig{Driver: "postgres", Path: "x"})
	var storageErr *report.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("error = %v, want *StorageError", err)
	}
}

func TestNewSQLiteStorage_ReopenKeepsReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	for _, driver := range []string{DriverPureGo, DriverCGO} {
		s, err := NewSQLiteStorage(&SQLiteConfig{Driver: driver, Path: path, WALMode: true, BusyTimeout: time.Second})
		if err != nil {
			t.Fatalf("NewSQLiteStorage(%s) error = %v", driver, err)
		}
		if err := s.Store(context.Background(), newReport("from-"+driver, "a.yaml", 0)); err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
	}

	s, err := NewSQLiteStorage(&SQLiteConfig{Driver: DriverPureGo, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	n, err := s.Count(context.Background(), &report.Query{})
	if err != nil || n != 2 {
		t.Errorf("Count() = %d, %v, want 2 reports written by both drivers", n, err)
	}
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	r := newReport("x", "a.yaml", 0, "BadUnresolvedType")
	if err := s.Store(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Findings[0].Code = "changed"

	got, _ := s.Get(ctx, "x")
	if got.Findings[0].Code != "BadUnresolvedType" {
		t.Errorf("stored report was mutated: %s", got.Findings[0].Code)
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}
