// Package analysis implements the classification and aggregation stages of
// the report pipeline. Both stages are pure, deterministic transformations
// over immutable finding records: Classify maps each record onto a category
// and severity tier using the static rule tables in pkg/finding, and
// Aggregate folds the classified batch into summary statistics.
//
// Neither stage performs I/O beyond structured diagnostic logging, and
// neither mutates its input.
package analysis
