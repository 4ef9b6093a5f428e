// Package acquire turns export files of any supported format into the raw
// delimited text the tabular parser consumes. Excel workbooks are flattened
// to tab-separated lines; plain-text formats are read as-is with the UTF-8
// byte order mark stripped.
package acquire
