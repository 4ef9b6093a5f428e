// Package exporter writes the pipeline outputs: the JSON statistics report
// consumed by the dashboard and the canonical merged-trips CSV.
//
// The trips CSV uses the same Catalan column headers and date format as the
// Smou exports themselves, so a merged file can be fed straight back into
// the parser.
package exporter
