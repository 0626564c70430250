package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
)

// Report is the persisted outcome of one validation run.
type Report struct {
	// Identity
	ID        string `json:"id"`         // UUID v4
	ModelPath string `json:"model_path"` // Model files, comma separated
	Version   string `json:"version"`    // EDM version validated against

	// Timing
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	// Outcome
	Valid      bool      `json:"valid"`
	Critical   bool      `json:"critical"` // Semantic pass was skipped
	ErrorCount int       `json:"error_count"`
	Visited    int       `json:"visited"` // Elements reached by the structural pass
	Findings   []Finding `json:"findings"`
}

// Finding is one validation error in a report.
type Finding struct {
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Location   string `json:"location,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// New builds a report for a run that started at started.
func New(modelPath string, version edm.Version, started time.Time, stats validator.Stats) *Report {
	findings := make([]Finding, 0, len(stats.Errors))
	for _, e := range stats.Errors {
		findings = append(findings, NewFinding(e))
	}
	return &Report{
		ID:         uuid.NewString(),
		ModelPath:  modelPath,
		Version:    string(version),
		StartedAt:  started,
		Duration:   stats.Duration,
		Valid:      len(stats.Errors) == 0,
		Critical:   stats.Critical,
		ErrorCount: len(stats.Errors),
		Visited:    stats.Visited,
		Findings:   findings,
	}
}

// NewFinding converts a validation error.
func NewFinding(e *edmErrors.EdmError) Finding {
	f := Finding{
		Code:       e.Code.String(),
		Severity:   e.Severity.String(),
		Message:    e.Message,
		Suggestion: e.Suggestion(),
	}
	if e.Location.IsValid() {
		f.Location = e.Location.String()
	}
	return f
}

// HasCode reports whether the report contains a finding with code.
func (r *Report) HasCode(code string) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

// Query defines filter parameters for querying reports.
type Query struct {
	// Time range
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Filters
	ModelPath string `json:"model_path,omitempty"`
	Valid     *bool  `json:"valid,omitempty"`
	Code      string `json:"code,omitempty"` // Reports containing a finding with this code

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Sorting by start time. "asc" or "desc" (default).
	SortOrder string `json:"sort_order,omitempty"`
}

// Matches reports whether r passes the query filters. Pagination and
// sorting are not considered.
func (q *Query) Matches(r *Report) bool {
	if q.StartTime != nil && r.StartedAt.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && r.StartedAt.After(*q.EndTime) {
		return false
	}
	if q.ModelPath != "" && r.ModelPath != q.ModelPath {
		return false
	}
	if q.Valid != nil && r.Valid != *q.Valid {
		return false
	}
	if q.Code != "" && !r.HasCode(q.Code) {
		return false
	}
	return true
}

// Storage defines the interface for report storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a report.
	Store(ctx context.Context, report *Report) error

	// Get returns the report with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Report, error)

	// Query retrieves reports matching the query filters.
	// Returns an empty slice if no reports match.
	Query(ctx context.Context, query *Query) ([]*Report, error)

	// Count returns the number of reports matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes reports matching the query filters and returns the
	// number deleted.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
