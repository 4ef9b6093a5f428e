// Package ingest turns raw Smou activity exports into canonical trip
// records. The parser is deliberately tolerant: it locates the header row
// heuristically, infers the field delimiter, resolves column semantics by
// substring patterns and silently skips malformed or non-Bicing rows,
// favouring partial ingestion over total failure. The merger combines
// batches from several exports and removes duplicate trips.
package ingest
