// Package tabular loads and writes the delimited text exports produced by the
// access administration system.
//
// Exports arrive as tab-, comma-, or semicolon-separated text with a header
// row. Load sniffs the delimiter from the header line, normalizes column
// names, and returns a Table for by-name field access. Write always emits
// comma-separated output, regardless of the input delimiter.
//
// # Errors
//
//   - FormatError: the table is readable but required columns are missing.
//   - ParseError: the input cannot be decoded as delimited text at all.
//
// Both abort the run; callers never receive a partially loaded table.
package tabular
