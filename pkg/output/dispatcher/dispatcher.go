// Package dispatcher routes a built report document to the renderers for
// the requested output formats. The renderer set is closed and small, so
// dispatch is a map lookup rather than open-ended plugin discovery.
//
// Renderer failures are captured per format and never abort sibling
// formats. A print-ready (PDF) failure degrades to the templated HTML
// output under the PDF key, so callers always receive something
// presentable for every requested format that has a working renderer.
package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/osintment/osintment/pkg/report"
	"github.com/osintment/osintment/pkg/workerpool"
)

// ErrNoRenderer indicates a requested format has no registered renderer.
var ErrNoRenderer = errors.New("dispatcher: no renderer registered for format")

// Format identifies one output format.
type Format string

const (
	// FormatHTML is the self-contained templated document.
	FormatHTML Format = "html"
	// FormatPDF is the print-ready paginated document.
	FormatPDF Format = "pdf"
	// FormatJSON is the lossless structured export.
	FormatJSON Format = "json"
	// FormatCSV is the tabular export, one row per finding.
	FormatCSV Format = "csv"
	// FormatText is the plain-text executive summary.
	FormatText Format = "txt"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatJSON, FormatCSV, FormatText}
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatPDF, FormatJSON, FormatCSV, FormatText:
		return true
	}
	return false
}

// Extension returns the artifact file extension for the format, without
// the leading dot.
func (f Format) Extension() string {
	return string(f)
}

// String returns the format as a string.
func (f Format) String() string {
	return string(f)
}

// Renderer serializes an immutable report document into one format.
// Implementations must not retain or modify the document.
type Renderer interface {
	// Format returns the single format this renderer produces.
	Format() Format

	// Render produces the serialized artifact for doc.
	Render(doc *report.Document) ([]byte, error)
}

// Result is the outcome of rendering one requested format.
type Result struct {
	// Format is the format that was requested (not necessarily the
	// format of Data when Degraded is set).
	Format Format

	// Data is the rendered artifact, nil when Err is set and no
	// fallback applied.
	Data []byte

	// Err is the render failure, if any. A degraded result clears it
	// and describes the original failure in Notice instead.
	Err error

	// Degraded is true when a fallback renderer's output was
	// substituted for the requested format.
	Degraded bool

	// Notice describes the degradation, empty otherwise.
	Notice string
}

// Config configures a Dispatcher.
type Config struct {
	// Workers bounds the render parallelism. Zero or less means one
	// worker per supported format.
	Workers int

	// Logger receives per-format failure diagnostics. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Dispatcher selects and invokes renderers by format. It is created once
// per report-generation call and closed when rendering completes; it
// holds no state between calls beyond its renderer registry.
type Dispatcher struct {
	mu        sync.RWMutex
	renderers map[Format]Renderer
	pool      *workerpool.Pool
	logger    *slog.Logger
}

// New creates a dispatcher with an empty renderer registry.
func New(cfg Config) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = len(Formats())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		renderers: make(map[Format]Renderer),
		pool:      workerpool.New(workers),
		logger:    logger,
	}
}

// Register adds a renderer. A later registration for the same format
// replaces the earlier one.
func (d *Dispatcher) Register(r Renderer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderers[r.Format()] = r
}

// Render produces one Result per requested format. Formats render in
// parallel; each renderer only reads the shared immutable document, so
// no synchronization beyond result collection is needed. Duplicate
// formats in the request collapse to one.
//
// Render never returns an error: all failures are captured in the
// per-format Results.
func (d *Dispatcher) Render(doc *report.Document, formats []Format) map[Format]Result {
	requested := dedupe(formats)
	results := make([]Result, len(requested))

	d.pool.ParallelFor(len(requested), func(i int) {
		results[i] = d.renderOne(doc, requested[i])
	})

	out := make(map[Format]Result, len(requested))
	for _, res := range results {
		out[res.Format] = res
	}

	d.applyFallback(doc, out)
	return out
}

// Close releases the dispatcher's worker pool.
func (d *Dispatcher) Close() {
	d.pool.Close()
}

func (d *Dispatcher) renderOne(doc *report.Document, f Format) Result {
	d.mu.RLock()
	r, ok := d.renderers[f]
	d.mu.RUnlock()

	if !ok {
		return Result{Format: f, Err: fmt.Errorf("%w: %s", ErrNoRenderer, f)}
	}

	data, err := r.Render(doc)
	if err != nil {
		d.logger.Warn("renderer failed", "format", f, "error", err)
		return Result{Format: f, Err: fmt.Errorf("render %s: %w", f, err)}
	}
	return Result{Format: f, Data: data}
}

// applyFallback substitutes templated HTML output for a failed
// print-ready render. Any other failed format stays a plain error.
func (d *Dispatcher) applyFallback(doc *report.Document, out map[Format]Result) {
	pdfRes, ok := out[FormatPDF]
	if !ok || pdfRes.Err == nil {
		return
	}

	// Reuse the HTML artifact when it was requested and succeeded.
	if htmlRes, ok := out[FormatHTML]; ok && htmlRes.Err == nil {
		out[FormatPDF] = degraded(pdfRes, htmlRes.Data)
		return
	}

	d.mu.RLock()
	html, ok := d.renderers[FormatHTML]
	d.mu.RUnlock()
	if !ok {
		return
	}

	data, err := html.Render(doc)
	if err != nil {
		d.logger.Warn("fallback renderer failed", "format", FormatHTML, "error", err)
		return
	}
	out[FormatPDF] = degraded(pdfRes, data)
}

func degraded(failed Result, data []byte) Result {
	return Result{
		Format:   failed.Format,
		Data:     data,
		Degraded: true,
		Notice:   fmt.Sprintf("print-ready render failed (%v); substituted templated document output", failed.Err),
	}
}

func dedupe(formats []Format) []Format {
	seen := make(map[Format]struct{}, len(formats))
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
