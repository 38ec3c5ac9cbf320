package writers

import (
	"bytes"
	"fmt"

	gofpdf "github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osintment/osintment/pkg/finding"
	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
)

// Compile-time interface check.
var _ dispatcher.Renderer = (*PDFRenderer)(nil)

// pdfSeverityColors maps severity tiers to RGB text colors.
var pdfSeverityColors = map[finding.Severity][]int{
	finding.Critical: {220, 38, 38},
	finding.High:     {234, 88, 12},
	finding.Medium:   {217, 119, 6},
	finding.Low:      {22, 163, 74},
	finding.Info:     {37, 99, 235},
}

// PDFConfig configures the print-ready renderer.
type PDFConfig struct {
	// Title is the cover page title; empty derives one from the
	// scan target.
	Title string

	// PageSize is the paper size (default "A4").
	PageSize string

	// Orientation is "P" (portrait, default) or "L" (landscape).
	Orientation string

	// MaxValueLen truncates finding values in tables (default 80).
	MaxValueLen int
}

// PDFRenderer produces a paginated document: a cover page with the scan
// identity and report metadata, an executive summary page, and one table
// section per finding category. The PDF creation date is pinned to the
// document's generation timestamp so repeated renders are byte-identical.
type PDFRenderer struct {
	config PDFConfig
}

// NewPDFRenderer creates a print-ready document renderer.
func NewPDFRenderer(config PDFConfig) *PDFRenderer {
	if config.PageSize == "" {
		config.PageSize = "A4"
	}
	if config.Orientation == "" {
		config.Orientation = "P"
	}
	if config.MaxValueLen <= 0 {
		config.MaxValueLen = 80
	}
	return &PDFRenderer{config: config}
}

// Format returns the print-ready document format.
func (r *PDFRenderer) Format() dispatcher.Format {
	return dispatcher.FormatPDF
}

// Render builds the paginated document.
func (r *PDFRenderer) Render(doc *report.Document) ([]byte, error) {
	pdf := gofpdf.New(r.config.Orientation, "mm", r.config.PageSize, "")
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(148, 163, 184)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s  |  Page %d of {nb}", doc.Meta.Company, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	r.addCoverPage(pdf, doc)
	r.addSummary(pdf, doc)
	for _, sec := range doc.Sections {
		r.addSection(pdf, sec)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) addCoverPage(pdf *gofpdf.Fpdf, doc *report.Document) {
	pdf.AddPage()

	title := r.config.Title
	if title == "" {
		title = "OSINT Assessment"
	}

	pdf.Ln(60)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 14, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(0, 10, doc.Target, "", 1, "C", false, 0, "")
	pdf.Ln(30)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 116, 139)
	for _, line := range []string{
		"Scan ID: " + doc.ScanID,
		"Generated: " + doc.GeneratedAt.Format("January 2, 2006 at 15:04 MST"),
		doc.Meta.Company,
		"Prepared by " + doc.Meta.Author,
	} {
		pdf.CellFormat(0, 7, line, "", 1, "C", false, 0, "")
	}
}

func (r *PDFRenderer) addSummary(pdf *gofpdf.Fpdf, doc *report.Document) {
	pdf.AddPage()
	r.addSectionHeader(pdf, "Executive Summary")

	stats := doc.Stats
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)

	rows := [][2]string{
		{"Total Findings", fmt.Sprintf("%d", stats.TotalFindings)},
		{"Critical Findings", fmt.Sprintf("%d", stats.CriticalFindings)},
		{"Unique Event Types", fmt.Sprintf("%d", stats.UniqueEventTypes)},
		{"Average Confidence", fmt.Sprintf("%.1f", stats.AvgConfidence)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Severity breakdown.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	titleCase := cases.Title(language.English)
	for _, sev := range finding.Severities() {
		pdf.CellFormat(30, 8, titleCase.String(string(sev)), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, sev := range finding.Severities() {
		color := pdfSeverityColors[sev]
		pdf.SetTextColor(color[0], color[1], color[2])
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", stats.BySeverity[sev]), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.Ln(6)

	if len(stats.TopCategories) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(100, 116, 139)
		pdf.MultiCell(0, 6, "No findings were recorded for this scan.", "", "L", false)
		return
	}

	// Top categories.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Findings", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Share", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, tc := range stats.TopCategories {
		pdf.CellFormat(60, 7, titleCase.String(string(tc.Category)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", tc.Count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f%%", stats.Distribution[tc.Category]), "1", 1, "C", false, 0, "")
	}
}

func (r *PDFRenderer) addSection(pdf *gofpdf.Fpdf, sec report.Section) {
	pdf.AddPage()
	titleCase := cases.Title(language.English)
	r.addSectionHeader(pdf, fmt.Sprintf("%s Findings (%d)", titleCase.String(string(sec.Category)), len(sec.Entries)))

	pageW, _ := pdf.GetPageSize()
	valueW := pageW - 20 - 22 - 45 - 40

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(22, 8, "Severity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Event Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 8, "Value", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Module", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range sec.Entries {
		if i%2 == 0 {
			pdf.SetFillColor(248, 250, 252)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		color := pdfSeverityColors[e.Severity]
		if color == nil {
			color = []int{128, 128, 128}
		}
		pdf.SetTextColor(color[0], color[1], color[2])
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(22, 7, string(e.Severity), "1", 0, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, 7, e.EventType, "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, 7, truncate(e.Value, r.config.MaxValueLen), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 7, e.SourceModule, "1", 1, "L", true, 0, "")
	}
}

func (r *PDFRenderer) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(10, pdf.GetY(), pageRight(pdf), pdf.GetY())
	pdf.Ln(4)
}

func pageRight(pdf *gofpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	return w - 10
}

// truncate limits a table cell value, rune-safe.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen > 3 {
		return string(runes[:maxLen-3]) + "..."
	}
	return string(runes[:maxLen])
}
