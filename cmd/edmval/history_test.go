package main

import (
	"testing"
	"time"
)

func TestBuildHistoryQuery(t *testing.T) {
	saved := historyFlags
	defer func() { historyFlags = saved }()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func()
		wantValid *bool
		wantStart *time.Time
	}{
		{
			name:  "no filters",
			setup: func() {},
		},
		{
			name:      "invalid runs",
			setup:     func() { historyFlags.invalid = true },
			wantValid: new(bool),
		},
		{
			name: "valid runs since a day",
			setup: func() {
				historyFlags.valid = true
				historyFlags.since = 24 * time.Hour
			},
			wantValid: func() *bool { b := true; return &b }(),
			wantStart: func() *time.Time { t := now.Add(-24 * time.Hour); return &t }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			historyFlags = saved
			historyFlags.model = "sales.yaml"
			historyFlags.code = "KeyMissingOnEntityType"
			historyFlags.limit = 20
			historyFlags.offset = 5
			historyFlags.valid = false
			historyFlags.invalid = false
			historyFlags.since = 0
			tt.setup()

			q := buildHistoryQuery(now)

			if q.ModelPath != "sales.yaml" || q.Code != "KeyMissingOnEntityType" {
				t.Errorf("filters = %q, %q", q.ModelPath, q.Code)
			}
			if q.Limit != 20 || q.Offset != 5 || q.SortOrder != "desc" {
				t.Errorf("pagination = %d, %d, %q", q.Limit, q.Offset, q.SortOrder)
			}

			switch {
			case tt.wantValid == nil && q.Valid != nil:
				t.Errorf("Valid = %v, want nil", *q.Valid)
			case tt.wantValid != nil && (q.Valid == nil || *q.Valid != *tt.wantValid):
				t.Errorf("Valid = %v, want %v", q.Valid, *tt.wantValid)
			}

			switch {
			case tt.wantStart == nil && q.StartTime != nil:
				t.Errorf("StartTime = %v, want nil", q.StartTime)
			case tt.wantStart != nil && (q.StartTime == nil || !q.StartTime.Equal(*tt.wantStart)):
				t.Errorf("StartTime = %v, want %v", q.StartTime, tt.wantStart)
			}
		})
	}
}
