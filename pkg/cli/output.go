package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/report"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output, one row per finding.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat resolves a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: text, json, csv)", s)
	}
}

// Formatter formats command output.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// CodeInfo describes one error code for the codes command.
type CodeInfo struct {
	Code     int    `json:"code"`
	Name     string `json:"name"`
	Critical bool   `json:"critical"`
}

// CodeCatalog lists every known error code in numeric order.
func CodeCatalog() []CodeInfo {
	codes := edmErrors.Codes()
	infos := make([]CodeInfo, 0, len(codes))
	for _, c := range codes {
		infos = append(infos, CodeInfo{
			Code:     int(c),
			Name:     c.String(),
			Critical: edmErrors.IsCritical(c),
		})
	}
	return infos
}

// TextFormatter formats output as plain text. Reports are printed with
// their findings unless Summary is set, in which case each report is one
// line. A positive Context prints that many source lines around every
// finding whose location can be read back from disk.
type TextFormatter struct {
	Summary bool
	Context int
}

// Format converts data to text format.
func (f *TextFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.FormatTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case []*report.Report:
		if f.Summary {
			return writeReportSummaries(w, v)
		}
		return writeReports(w, v, f.Context)
	case []CodeInfo:
		return writeCodes(w, v)
	default:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}
}

func writeReports(w io.Writer, reports []*report.Report, radius int) error {
	ew := &errWriter{w: w}
	total := 0
	for _, r := range reports {
		mark := "✓"
		if !r.Valid {
			mark = "✗"
		}
		ew.printf("%s %s (EDM %s): %s, %d elements, %s\n",
			mark, r.ModelPath, r.Version, errorSummary(r), r.Visited, r.Duration.Round(time.Microsecond))
		if r.Critical {
			ew.printf("  interface-critical errors found, semantic validation skipped\n")
		}
		for _, finding := range r.Findings {
			ew.printf("  %s\n", formatFinding(finding))
			if radius > 0 {
				writeExcerpt(ew, finding.Location, radius)
			}
		}
		total += r.ErrorCount
	}
	if len(reports) > 1 {
		ew.printf("\nSummary:\n  %d model(s), %d error(s)\n", len(reports), total)
	}
	return ew.err
}

func writeReportSummaries(w io.Writer, reports []*report.Report) error {
	ew := &errWriter{w: w}
	if len(reports) == 0 {
		ew.printf("No reports found.\n")
		return ew.err
	}
	ew.printf("%-36s  %-20s  %-7s  %-8s  %6s  %s\n", "ID", "STARTED", "VERSION", "RESULT", "ERRORS", "MODEL")
	for _, r := range reports {
		ew.printf("%-36s  %-20s  %-7s  %-8s  %6d  %s\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Version, result(r), r.ErrorCount, r.ModelPath)
	}
	return ew.err
}

func writeCodes(w io.Writer, codes []CodeInfo) error {
	ew := &errWriter{w: w}
	for _, c := range codes {
		critical := ""
		if c.Critical {
			critical = "  (interface-critical)"
		}
		ew.printf("%4d  %s%s\n", c.Code, c.Name, critical)
	}
	return ew.err
}

func writeExcerpt(ew *errWriter, location string, radius int) {
	loc, ok := edmErrors.ParseLocation(location)
	if !ok {
		return
	}
	excerpt := edmErrors.Excerpt(loc, radius)
	for _, line := range strings.SplitAfter(excerpt, "\n") {
		if line != "" {
			ew.printf("    %s", line)
		}
	}
}

func formatFinding(f report.Finding) string {
	s := f.Code + ": " + f.Message
	if f.Location != "" {
		s = f.Location + ": " + s
	}
	if f.Suggestion != "" {
		s += " " + f.Suggestion
	}
	return s
}

func errorSummary(r *report.Report) string {
	switch r.ErrorCount {
	case 0:
		return "valid"
	case 1:
		return "1 error"
	default:
		return fmt.Sprintf("%d errors", r.ErrorCount)
	}
}

func result(r *report.Report) string {
	switch {
	case r.Critical:
		return "critical"
	case r.Valid:
		return "valid"
	default:
		return "invalid"
	}
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter formats reports and code catalogs as CSV.
type CSVFormatter struct{}

var (
	reportCSVHeader = []string{"id", "model_path", "version", "started_at", "valid", "code", "severity", "location", "message"}
	codeCSVHeader   = []string{"code", "name", "critical"}
)

// Format converts data to CSV format.
func (f *CSVFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.FormatTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTo writes data to writer in CSV format. A report without findings
// is written as a single row with empty finding columns.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	var rows [][]string
	switch v := data.(type) {
	case []*report.Report:
		rows = append(rows, reportCSVHeader)
		for _, r := range v {
			base := []string{r.ID, r.ModelPath, r.Version, r.StartedAt.UTC().Format(time.RFC3339Nano), strconv.FormatBool(r.Valid)}
			if len(r.Findings) == 0 {
				rows = append(rows, append(base, "", "", "", ""))
				continue
			}
			for _, finding := range r.Findings {
				row := append([]string(nil), base...)
				rows = append(rows, append(row, finding.Code, finding.Severity, finding.Location, finding.Message))
			}
		}
	case []CodeInfo:
		rows = append(rows, codeCSVHeader)
		for _, c := range v {
			rows = append(rows, []string{strconv.Itoa(c.Code), c.Name, strconv.FormatBool(c.Critical)})
		}
	default:
		return fmt.Errorf("CSV output is not supported for %T", data)
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
