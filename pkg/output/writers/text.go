package writers

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
)

// Compile-time interface check.
var _ dispatcher.Renderer = (*TextRenderer)(nil)

// textTemplate is the plain-text executive summary layout.
const textTemplate = `OSINT INTELLIGENCE REPORT - EXECUTIVE SUMMARY
{{ repeat 60 "=" }}

Target:           {{ .Target }}
Scan ID:          {{ .ScanID }}
Report Generated: {{ .GeneratedAt.Format "2006-01-02 15:04:05 MST" }}
Prepared by:      {{ .Meta.Author }}, {{ .Meta.Company }}

KEY METRICS
{{ repeat 11 "-" }}
Total Findings:     {{ .Stats.TotalFindings }}
Critical Findings:  {{ .Stats.CriticalFindings }}
Unique Event Types: {{ .Stats.UniqueEventTypes }}
Average Confidence: {{ printf "%.1f" .Stats.AvgConfidence }}

TOP DISCOVERY CATEGORIES
{{ repeat 24 "-" }}
{{- range .Stats.TopCategories }}
{{ printf "%-20s %6d (%5.1f%%)" (upper (toString .Category)) .Count (index $.Stats.Distribution .Category) }}
{{- end }}
{{- if not .Stats.TopCategories }}
(no findings recorded)
{{- end }}

{{ repeat 60 "=" }}
For detailed findings, refer to the full HTML or PDF report.
`

// TextRenderer produces the brief plain-text executive summary, suitable
// for terminals and plaintext email bodies.
type TextRenderer struct {
	tmpl *template.Template
}

// NewTextRenderer creates an executive summary renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		tmpl: template.Must(template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(textTemplate)),
	}
}

// Format returns the plain-text format.
func (r *TextRenderer) Format() dispatcher.Format {
	return dispatcher.FormatText
}

// Render executes the summary template against the document.
func (r *TextRenderer) Render(doc *report.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("text: execute template: %w", err)
	}
	return buf.Bytes(), nil
}
