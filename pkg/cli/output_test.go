package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/report"
)

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}
	data := "test message"

	output, err := formatter.Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "test message\n"
	if string(output) != expected {
		t.Errorf("Format() = %q, want %q", string(output), expected)
	}
}

func TestTextFormatterWriter(t *testing.T) {
	formatter := &TextFormatter{}
	data := "test message"
	buf := &bytes.Buffer{}

	err := formatter.FormatTo(buf, data)
	if err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	expected := "test message\n"
	if buf.String() != expected {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), expected)
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		indent bool
	}{
		{
			name:   "simple string",
			data:   "test",
			indent: false,
		},
		{
			name: "map with indent",
			data: map[string]string{
				"key": "value",
			},
			indent: true,
		},
		{
			name: "struct",
			data: struct {
				Name  string `json:"name"`
				Value int    `json:"value"`
			}{
				Name:  "test",
				Value: 42,
			},
			indent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Indent: tt.indent}
			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Verify it's valid JSON by unmarshaling
			var result any
			if err := json.Unmarshal(output, &result); err != nil {
				t.Errorf("Format() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestJSONFormatterWriter(t *testing.T) {
	formatter := &JSONFormatter{Indent: true}
	data := map[string]string{"test": "value"}
	buf := &bytes.Buffer{}

	err := formatter.FormatTo(buf, data)
	if err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	// Verify valid JSON
	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Errorf("FormatTo() produced invalid JSON: %v", err)
	}

	if result["test"] != "value" {
		t.Errorf("FormatTo() = %v, want %v", result, data)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{
			name:   "text formatter",
			format: FormatText,
			want:   "*cli.TextFormatter",
		},
		{
			name:   "json formatter",
			format: FormatJSON,
			want:   "*cli.JSONFormatter",
		},
		{
			name:   "csv formatter",
			format: FormatCSV,
			want:   "*cli.CSVFormatter",
		},
		{
			name:   "default to text",
			format: "unknown",
			want:   "*cli.TextFormatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewFormatter(tt.format)
			got := fmt.Sprintf("%T", formatter)
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func testReports() []*report.Report {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*report.Report{
		{
			ID:         "11111111-1111-1111-1111-111111111111",
			ModelPath:  "sales.yaml",
			Version:    "4.0",
			StartedAt:  started,
			Duration:   1500 * time.Microsecond,
			Valid:      false,
			ErrorCount: 2,
			Visited:    14,
			Findings: []report.Finding{
				{
					Code:     "KeyMissingOnEntityType",
					Severity: "Error",
					Message:  "The key of entity type 'Sales.Order' is missing.",
					Location: "sales.yaml:3:5",
				},
				{
					Code:       "BadUnresolvedType",
					Severity:   "Error",
					Message:    "The type 'Sales.Adress' could not be found.",
					Suggestion: "Did you mean 'Sales.Address'?",
				},
			},
		},
		{
			ID:        "22222222-2222-2222-2222-222222222222",
			ModelPath: "people.yaml",
			Version:   "4.01",
			StartedAt: started.Add(time.Minute),
			Duration:  time.Millisecond,
			Valid:     true,
			Visited:   8,
		},
	}
}

func TestTextFormatterReports(t *testing.T) {
	out, err := (&TextFormatter{}).Format(testReports())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)

	wantLines := []string{
		"✗ sales.yaml (EDM 4.0): 2 errors, 14 elements, 1.5ms",
		"  sales.yaml:3:5: KeyMissingOnEntityType: The key of entity type 'Sales.Order' is missing.",
		"  BadUnresolvedType: The type 'Sales.Adress' could not be found. Did you mean 'Sales.Address'?",
		"✓ people.yaml (EDM 4.01): valid, 8 elements, 1ms",
		"  2 model(s), 2 error(s)",
	}
	for _, want := range wantLines {
		if !strings.Contains(text, want+"\n") {
			t.Errorf("output missing line %q\ngot:\n%s", want, text)
		}
	}
}

func TestTextFormatterSourceExcerpt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	if err := os.WriteFile(path, []byte("namespace: Sales\ntypes:\n  - name: Order\n    kind: entity\nend\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r := &report.Report{ModelPath: path, Version: "4.0", ErrorCount: 2, Findings: []report.Finding{
		{Code: "KeyMissingOnEntityType", Message: "missing key", Location: path + ":3:5"},
		{Code: "BadUnresolvedType", Message: "no location"},
	}}

	out, err := (&TextFormatter{Context: 1}).Format([]*report.Report{r})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "  " + path + ":3:5: KeyMissingOnEntityType: missing key\n" +
		"      2 | types:\n" +
		"    > 3 |   - name: Order\n" +
		"        |     ^\n" +
		"      4 |     kind: entity\n" +
		"  BadUnresolvedType: no location\n"
	if !strings.Contains(string(out), want) {
		t.Errorf("output missing excerpt\nwant:\n%s\ngot:\n%s", want, out)
	}

	out, err = (&TextFormatter{}).Format([]*report.Report{r})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(string(out), " | ") {
		t.Errorf("excerpt printed without Context:\n%s", out)
	}
}

func TestTextFormatterCriticalReport(t *testing.T) {
	r := &report.Report{ModelPath: "bad.yaml", Version: "4.0", Critical: true, ErrorCount: 1,
		Findings: []report.Finding{{Code: "InterfaceCriticalKindValueMismatch", Message: "kind mismatch"}}}

	out, err := (&TextFormatter{}).Format([]*report.Report{r})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), "semantic validation skipped") {
		t.Errorf("expected critical note, got:\n%s", out)
	}
	if strings.Contains(string(out), "Summary:") {
		t.Errorf("single report should not print a summary, got:\n%s", out)
	}
}

func TestTextFormatterSummary(t *testing.T) {
	out, err := (&TextFormatter{Summary: true}).Format(testReports())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "invalid") || !strings.Contains(lines[1], "2026-03-01T12:00:00Z") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "valid") || !strings.HasSuffix(lines[2], "people.yaml") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTextFormatterSummaryEmpty(t *testing.T) {
	out, err := (&TextFormatter{Summary: true}).Format([]*report.Report{})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(out) != "No reports found.\n" {
		t.Errorf("Format() = %q", out)
	}
}

func TestTextFormatterCodes(t *testing.T) {
	codes := []CodeInfo{
		{Code: 8, Name: "KeyMissingOnEntityType"},
		{Code: 243, Name: "InterfaceCriticalKindValueMismatch", Critical: true},
	}
	out, err := (&TextFormatter{}).Format(codes)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "   8  KeyMissingOnEntityType\n 243  InterfaceCriticalKindValueMismatch  (interface-critical)\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestCSVFormatterReports(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testReports())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	// header, two findings, one valid report
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0][0] != "id" || records[0][5] != "code" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][5] != "KeyMissingOnEntityType" || records[1][7] != "sales.yaml:3:5" {
		t.Errorf("first finding row = %v", records[1])
	}
	if records[3][4] != "true" || records[3][5] != "" {
		t.Errorf("valid report row = %v", records[3])
	}
}

func TestCSVFormatterCodes(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&CSVFormatter{}).FormatTo(buf, []CodeInfo{{Code: 8, Name: "KeyMissingOnEntityType"}}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "code,name,critical\n8,KeyMissingOnEntityType,false\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestCSVFormatterUnsupported(t *testing.T) {
	if _, err := (&CSVFormatter{}).Format("text"); err == nil {
		t.Error("Format() expected error for unsupported data, got nil")
	}
}

func TestJSONFormatterReports(t *testing.T) {
	out, err := (&JSONFormatter{}).Format(testReports())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	var decoded []report.Report
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Findings[1].Suggestion == "" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"junit", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCodeCatalog(t *testing.T) {
	codes := CodeCatalog()
	if len(codes) != len(edmErrors.Codes()) {
		t.Fatalf("CodeCatalog() returned %d codes, want %d", len(codes), len(edmErrors.Codes()))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1].Code >= codes[i].Code {
			t.Fatalf("codes not sorted at %d: %d >= %d", i, codes[i-1].Code, codes[i].Code)
		}
	}
	for _, c := range codes {
		if c.Critical != edmErrors.IsCritical(edmErrors.ErrorCode(c.Code)) {
			t.Errorf("code %d critical = %v", c.Code, c.Critical)
		}
	}
}
