package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in     string
		want   Location
		wantOK bool
	}{
		{"sales.yaml:3:5", Location{File: "sales.yaml", Line: 3, Column: 5}, true},
		{`C:\models\sales.yaml:12:1`, Location{File: `C:\models\sales.yaml`, Line: 12, Column: 1}, true},
		{"sales.yaml:3:0", Location{File: "sales.yaml", Line: 3}, true},
		{"sales.yaml:0:4", Location{}, false},
		{"<unknown>", Location{}, false},
		{"sales.yaml:x:5", Location{}, false},
		{":3:5", Location{}, false},
		{"", Location{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLocation(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseLocation(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	loc := Location{File: "models/sales.yaml", Line: 7, Column: 2}
	if got, ok := ParseLocation(loc.String()); !ok || got != loc {
		t.Errorf("ParseLocation(String()) = %+v, %v", got, ok)
	}
}

func TestExcerpt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	content := "namespace: Sales\ntypes:\n  - name: Order\n    kind: entity\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		loc    Location
		radius int
		want   string
	}{
		{
			name:   "middle line with column",
			loc:    Location{File: path, Line: 3, Column: 5},
			radius: 1,
			want:   "  2 | types:\n> 3 |   - name: Order\n    |     ^\n  4 |     kind: entity\n",
		},
		{
			name:   "first line clipped",
			loc:    Location{File: path, Line: 1},
			radius: 2,
			want:   "> 1 | namespace: Sales\n  2 | types:\n  3 |   - name: Order\n",
		},
		{
			name:   "line past end of file",
			loc:    Location{File: path, Line: 9},
			radius: 1,
		},
		{
			name:   "missing file",
			loc:    Location{File: filepath.Join(t.TempDir(), "none.yaml"), Line: 1},
			radius: 1,
		},
		{
			name:   "generic location",
			radius: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.loc, tt.radius); got != tt.want {
				t.Errorf("Excerpt() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
