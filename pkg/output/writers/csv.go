package writers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
)

// Compile-time interface check.
var _ dispatcher.Renderer = (*CSVRenderer)(nil)

// UTF-8 BOM for Excel compatibility.
const utf8BOM = "\xEF\xBB\xBF"

// csvColumns is the fixed tabular export header. Column order is part of
// the export contract and must not change between runs.
var csvColumns = []string{
	"category",
	"event_type",
	"value",
	"severity",
	"source_module",
}

// CSVOptions configures the tabular export renderer.
type CSVOptions struct {
	// Delimiter sets the field delimiter; zero value means comma.
	Delimiter rune

	// ExcelCompatible prefixes the output with a UTF-8 BOM so Excel
	// renders non-ASCII values correctly.
	ExcelCompatible bool

	// SanitizeFormulas prefixes cells starting with a formula
	// character, preventing spreadsheet formula injection from
	// attacker-controlled finding values.
	SanitizeFormulas bool
}

// CSVRenderer flattens the document's category sections into one row per
// finding, preserving section order, with a header row first.
type CSVRenderer struct {
	opts CSVOptions
}

// NewCSVRenderer creates a tabular export renderer.
func NewCSVRenderer(opts CSVOptions) *CSVRenderer {
	return &CSVRenderer{opts: opts}
}

// Format returns the tabular export format.
func (r *CSVRenderer) Format() dispatcher.Format {
	return dispatcher.FormatCSV
}

// Render writes the header row followed by one row per finding.
func (r *CSVRenderer) Render(doc *report.Document) ([]byte, error) {
	var buf bytes.Buffer
	if r.opts.ExcelCompatible {
		buf.WriteString(utf8BOM)
	}

	w := csv.NewWriter(&buf)
	if r.opts.Delimiter != 0 {
		w.Comma = r.opts.Delimiter
	}

	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	for _, sec := range doc.Sections {
		for _, e := range sec.Entries {
			row := []string{
				string(sec.Category),
				e.EventType,
				e.Value,
				string(e.Severity),
				e.SourceModule,
			}
			if r.opts.SanitizeFormulas {
				for i, field := range row {
					row[i] = sanitizeForCSV(field)
				}
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeForCSV prevents formula execution in spreadsheets by prefixing
// cells that start with a formula trigger character.
func sanitizeForCSV(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
