// Package files locates trip export files on disk and provides the small
// set of filesystem helpers the report writers need.
package files
