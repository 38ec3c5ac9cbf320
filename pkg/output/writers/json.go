// Package writers provides the renderer implementations for each report
// output format.
package writers

import (
	"fmt"

	"github.com/osintment/osintment/pkg/jsonutil"
	"github.com/osintment/osintment/pkg/output/dispatcher"
	"github.com/osintment/osintment/pkg/report"
)

// Compile-time interface check.
var _ dispatcher.Renderer = (*JSONRenderer)(nil)

// JSONOptions configures the structured export renderer.
type JSONOptions struct {
	// Pretty enables indented output.
	Pretty bool

	// IndentSize sets the number of spaces per indent level
	// (default 2).
	IndentSize int
}

// JSONRenderer serializes the full report document losslessly. Parsing
// its output with ParseDocument reconstructs a document equal, field for
// field, to the one rendered.
type JSONRenderer struct {
	opts JSONOptions
}

// NewJSONRenderer creates a structured export renderer.
func NewJSONRenderer(opts JSONOptions) *JSONRenderer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = 2
	}
	return &JSONRenderer{opts: opts}
}

// Format returns the structured export format.
func (r *JSONRenderer) Format() dispatcher.Format {
	return dispatcher.FormatJSON
}

// Render encodes the document as JSON.
func (r *JSONRenderer) Render(doc *report.Document) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if r.opts.Pretty {
		indent := make([]byte, r.opts.IndentSize)
		for i := range indent {
			indent[i] = ' '
		}
		data, err = jsonutil.MarshalIndent(doc, "", string(indent))
	} else {
		data, err = jsonutil.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json: encode: %w", err)
	}
	return data, nil
}

// ParseDocument decodes a structured export back into a report document.
// This is the inverse of JSONRenderer.Render.
func ParseDocument(data []byte) (*report.Document, error) {
	var doc report.Document
	if err := jsonutil.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json: decode document: %w", err)
	}
	return &doc, nil
}
