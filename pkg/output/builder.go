// Package output wires the renderer set to the render dispatcher and
// writes rendered artifacts to the configured output directory, one file
// per requested format.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/output/writers"
	"github.com/osintment/osintment/pkg/report"
)

// Config controls artifact generation.
type Config struct {
	// OutputDir is where artifact files are written. Created when
	// missing.
	OutputDir string

	// Formats are the requested output formats.
	Formats []dispatcher.Format

	// Title overrides the derived report title in HTML and PDF
	// output.
	Title string

	// ExcelCSV adds a UTF-8 BOM to CSV output.
	ExcelCSV bool

	// Workers bounds render parallelism; zero means one worker per
	// supported format.
	Workers int

	// Logger receives render diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Artifact is the per-format outcome of one report-generation call.
type Artifact struct {
	Format   dispatcher.Format
	Path     string
	Err      error
	Degraded bool
	Notice   string
}

// BuildDispatcher creates a dispatcher with the full renderer set
// registered. The caller owns the dispatcher and must Close it when
// rendering completes.
func BuildDispatcher(cfg Config) *dispatcher.Dispatcher {
	d := dispatcher.New(dispatcher.Config{Workers: cfg.Workers, Logger: cfg.Logger})

	d.Register(writers.NewHTMLRenderer(writers.HTMLConfig{Title: cfg.Title}))
	d.Register(writers.NewPDFRenderer(writers.PDFConfig{Title: cfg.Title}))
	d.Register(writers.NewJSONRenderer(writers.JSONOptions{Pretty: true}))
	d.Register(writers.NewCSVRenderer(writers.CSVOptions{
		ExcelCompatible:  cfg.ExcelCSV,
		SanitizeFormulas: true,
	}))
	d.Register(writers.NewTextRenderer())

	return d
}

// WriteArtifacts renders the document in every requested format and
// writes one file per format into cfg.OutputDir. Render and write
// failures are reported per artifact; only an unusable output directory
// fails the whole call.
func WriteArtifacts(doc *report.Document, cfg Config) ([]Artifact, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output: create directory: %w", err)
	}

	d := BuildDispatcher(cfg)
	defer d.Close()

	results := d.Render(doc, cfg.Formats)
	base := artifactBase(doc)

	artifacts := make([]Artifact, 0, len(results))
	for _, f := range cfg.Formats {
		res, ok := results[f]
		if !ok {
			continue // duplicate format in the request
		}
		art := Artifact{
			Format:   f,
			Degraded: res.Degraded,
			Notice:   res.Notice,
		}
		if res.Err != nil && res.Data == nil {
			art.Err = res.Err
			artifacts = append(artifacts, art)
			continue
		}

		path := filepath.Join(cfg.OutputDir, base+"."+f.Extension())
		if err := os.WriteFile(path, res.Data, 0o644); err != nil {
			art.Err = fmt.Errorf("output: write %s: %w", f, err)
		} else {
			art.Path = path
		}
		artifacts = append(artifacts, art)
	}
	return artifacts, nil
}

// artifactBase derives the artifact file name stem from the scan target
// and generation time, with path-hostile characters replaced.
func artifactBase(doc *report.Document) string {
	target := doc.Target
	if target == "" {
		target = "unknown"
	}
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_", " ", "_")
	return fmt.Sprintf("osint_report_%s_%s",
		replacer.Replace(target),
		doc.GeneratedAt.Format("20060102_150405"))
}
