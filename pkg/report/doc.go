// Package report defines the Report Document, the single immutable model
// handed to every output renderer, and the builder that assembles it from
// classified findings and summary statistics.
//
// A Document is created once per report-generation request and discarded
// after rendering; only rendered artifacts persist. Renderers read the
// document but never write to it.
package report
