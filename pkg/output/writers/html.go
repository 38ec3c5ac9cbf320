package writers

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/osintment/osintment/pkg/analysis"
	"github.com/osintment/osintment/pkg/finding"
	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
)

// Compile-time interface check.
var _ dispatcher.Renderer = (*HTMLRenderer)(nil)

// HTMLConfig configures the templated document renderer.
type HTMLConfig struct {
	// Title is the report title; empty means a title derived from
	// the scan target.
	Title string

	// ShowExecutiveSummary includes the summary block at the top
	// (default true when nothing is explicitly enabled).
	ShowExecutiveSummary bool

	// ShowDistribution includes the category distribution bars.
	ShowDistribution bool

	// ShowModuleStats includes the module efficiency table.
	ShowModuleStats bool
}

// HTMLRenderer produces a single self-contained HTML document with an
// executive summary, category distribution, per-category sections and a
// findings table per section. No external assets are referenced.
type HTMLRenderer struct {
	config HTMLConfig
	tmpl   *template.Template
}

// NewHTMLRenderer creates a templated document renderer. The template is
// parsed once at construction; a parse failure is a programming error
// and panics.
func NewHTMLRenderer(config HTMLConfig) *HTMLRenderer {
	if !config.ShowExecutiveSummary && !config.ShowDistribution && !config.ShowModuleStats {
		config.ShowExecutiveSummary = true
		config.ShowDistribution = true
		config.ShowModuleStats = true
	}
	return &HTMLRenderer{
		config: config,
		tmpl:   template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlTemplate)),
	}
}

// Format returns the templated document format.
func (r *HTMLRenderer) Format() dispatcher.Format {
	return dispatcher.FormatHTML
}

// Render executes the report template against the document.
func (r *HTMLRenderer) Render(doc *report.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.templateData(doc)); err != nil {
		return nil, fmt.Errorf("html: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// htmlData is the flattened view handed to the template.
type htmlData struct {
	Config       HTMLConfig
	Title        string
	Doc          *report.Document
	Severities   []finding.Severity
	Distribution []distributionRow
}

type distributionRow struct {
	Category finding.Category
	Count    int
	Percent  float64
}

func (r *HTMLRenderer) templateData(doc *report.Document) htmlData {
	title := r.config.Title
	if title == "" {
		title = "OSINT Assessment - " + doc.Target
	}

	rows := make([]distributionRow, 0, len(doc.Stats.CountByCategory))
	for _, cat := range finding.Categories() {
		count, ok := doc.Stats.CountByCategory[cat]
		if !ok {
			continue
		}
		rows = append(rows, distributionRow{
			Category: cat,
			Count:    count,
			Percent:  doc.Stats.Distribution[cat],
		})
	}

	return htmlData{
		Config:       r.config,
		Title:        title,
		Doc:          doc,
		Severities:   finding.Severities(),
		Distribution: rows,
	}
}

var htmlFuncs = template.FuncMap{
	"pct": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f)
	},
	"conf": func(c *int) string {
		if c == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *c)
	},
	"sevCount": func(stats analysis.SummaryStats, s finding.Severity) int {
		return stats.BySeverity[s]
	},
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
:root { --critical:#dc2626; --high:#ea580c; --medium:#d97706; --low:#16a34a; --info:#2563eb; }
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f8fafc; color: #1e293b; }
.container { max-width: 1100px; margin: 0 auto; padding: 24px; }
header { background: #1e293b; color: #f8fafc; padding: 28px 24px; }
header h1 { margin: 0 0 4px; font-size: 24px; }
header .sub { color: #94a3b8; font-size: 13px; }
.cards { display: flex; gap: 16px; flex-wrap: wrap; margin: 24px 0; }
.card { flex: 1 1 160px; background: #fff; border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px; }
.card .num { font-size: 28px; font-weight: 700; }
.card .label { color: #64748b; font-size: 12px; text-transform: uppercase; letter-spacing: .05em; }
.card.crit .num { color: var(--critical); }
h2 { border-bottom: 2px solid #e2e8f0; padding-bottom: 6px; margin-top: 32px; }
table { width: 100%; border-collapse: collapse; background: #fff; font-size: 14px; }
th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #e2e8f0; }
th { background: #f1f5f9; font-size: 12px; text-transform: uppercase; letter-spacing: .04em; color: #475569; }
.sev { display: inline-block; padding: 1px 8px; border-radius: 10px; color: #fff; font-size: 12px; font-weight: 600; }
.sev.critical { background: var(--critical); } .sev.high { background: var(--high); }
.sev.medium { background: var(--medium); } .sev.low { background: var(--low); } .sev.info { background: var(--info); }
.bar { background: #e2e8f0; border-radius: 4px; height: 10px; overflow: hidden; }
.bar > div { background: #2563eb; height: 100%; }
.dist-row { display: flex; align-items: center; gap: 12px; margin: 6px 0; font-size: 13px; }
.dist-row .name { width: 110px; }
.dist-row .bar { flex: 1; }
.dist-row .val { width: 110px; text-align: right; color: #64748b; }
footer { color: #94a3b8; font-size: 12px; margin: 40px 0 16px; text-align: center; }
@media print { body { background: #fff; } .card { break-inside: avoid; } h2 { break-after: avoid; } }
</style>
</head>
<body>
<header>
  <div class="container">
    <h1>{{ .Title }}</h1>
    <div class="sub">Target: {{ .Doc.Target }} &middot; Scan: {{ .Doc.ScanID }} &middot; Generated: {{ .Doc.GeneratedAt.Format "2006-01-02 15:04 MST" }}</div>
    <div class="sub">{{ .Doc.Meta.Company }} &middot; {{ .Doc.Meta.Author }}</div>
  </div>
</header>
<div class="container">

{{ if .Config.ShowExecutiveSummary }}
<h2>Executive Summary</h2>
<div class="cards">
  <div class="card"><div class="num">{{ .Doc.Stats.TotalFindings }}</div><div class="label">Total Findings</div></div>
  <div class="card crit"><div class="num">{{ .Doc.Stats.CriticalFindings }}</div><div class="label">Critical Findings</div></div>
  <div class="card"><div class="num">{{ .Doc.Stats.UniqueEventTypes }}</div><div class="label">Unique Event Types</div></div>
  <div class="card"><div class="num">{{ printf "%.1f" .Doc.Stats.AvgConfidence }}</div><div class="label">Avg Confidence</div></div>
</div>
<table>
  <tr>{{ range .Severities }}<th>{{ . }}</th>{{ end }}</tr>
  <tr>{{ range .Severities }}<td><span class="sev {{ . }}">{{ sevCount $.Doc.Stats . }}</span></td>{{ end }}</tr>
</table>
{{ end }}

{{ if and .Config.ShowDistribution .Distribution }}
<h2>Category Distribution</h2>
{{ range .Distribution }}
<div class="dist-row">
  <span class="name">{{ .Category }}</span>
  <div class="bar"><div style="width: {{ printf "%.1f" .Percent }}%"></div></div>
  <span class="val">{{ .Count }} ({{ pct .Percent }})</span>
</div>
{{ end }}
{{ end }}

{{ range .Doc.Sections }}
<h2>{{ .Category }} ({{ len .Entries }})</h2>
<table>
  <tr><th>Severity</th><th>Event Type</th><th>Value</th><th>Module</th><th>Confidence</th></tr>
  {{ range .Entries }}
  <tr>
    <td><span class="sev {{ .Severity }}">{{ .Severity }}</span></td>
    <td>{{ .EventType }}</td>
    <td>{{ .Value }}</td>
    <td>{{ .SourceModule }}</td>
    <td>{{ conf .Confidence }}</td>
  </tr>
  {{ end }}
</table>
{{ else }}
<h2>Findings</h2>
<p>No findings were recorded for this scan.</p>
{{ end }}

{{ if and .Config.ShowModuleStats .Doc.Stats.ModuleStats }}
<h2>Module Efficiency</h2>
<table>
  <tr><th>Module</th><th>Findings</th></tr>
  {{ range .Doc.Stats.ModuleStats }}
  <tr><td>{{ .Module }}</td><td>{{ .Count }}</td></tr>
  {{ end }}
</table>
{{ end }}

<footer>{{ .Doc.Meta.Company }} &middot; generated by {{ .Doc.Meta.Author }}</footer>
</div>
</body>
</html>
`
