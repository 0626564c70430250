package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/OData/odata.net-sub135/pkg/report"
)

// MemoryStorage implements report.Storage with an in-memory map.
// It is intended for tests and for runs with persistence disabled.
type MemoryStorage struct {
	reports map[string]*report.Report
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		reports: make(map[string]*report.Report),
	}
}

// Store saves a copy of r.
func (s *MemoryStorage) Store(ctx context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.ID] = clone(r)
	return nil
}

// Get returns a copy of the report with id.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, report.ErrNotFound
	}
	return clone(r), nil
}

// Query retrieves copies of the matching reports, sorted like the SQLite
// backend.
func (s *MemoryStorage) Query(ctx context.Context, query *report.Query) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*report.Report{}
	for _, r := range s.reports {
		if query.Matches(r) {
			results = append(results, clone(r))
		}
	}

	asc := strings.EqualFold(query.SortOrder, "asc")
	slices.SortFunc(results, func(a, b *report.Report) int {
		c := a.StartedAt.Compare(b.StartedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if !asc {
			c = -c
		}
		return c
	})

	start := min(query.Offset, len(results))
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results, nil
}

// Count returns the number of matching reports.
func (s *MemoryStorage) Count(ctx context.Context, query *report.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, r := range s.reports {
		if query.Matches(r) {
			count++
		}
	}
	return count, nil
}

// Delete removes matching reports.
func (s *MemoryStorage) Delete(ctx context.Context, query *report.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, r := range s.reports {
		if query.Matches(r) {
			delete(s.reports, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close drops all reports.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = make(map[string]*report.Report)
	return nil
}

// Size returns the number of stored reports.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.reports)
}

func clone(r *report.Report) *report.Report {
	c := *r
	c.Findings = slices.Clone(r.Findings)
	return &c
}
