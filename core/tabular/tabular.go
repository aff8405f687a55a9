package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table holds a delimited table with by-name column access. Tables come from
// Load or are built column-first with New and Append for export.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given columns, ready for Append and Write.
func New(columns ...string) *Table {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t
}

// Append adds one data row. Values are positional in column order.
func (t *Table) Append(values ...string) {
	t.rows = append(t.rows, values)
}

// Load reads delimited text with a header row. The delimiter is sniffed from
// the header line (tab, then comma, then semicolon), column names are trimmed
// and stripped of stray double quotes, and rows must be rectangular. Inputs
// that cannot be decoded return a ParseError.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, &ParseError{Err: errors.New("input is not valid UTF-8")}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Err: errors.New("input is empty")}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	// Some exports leave unbalanced quotes in header cells; keep them and let
	// cleanHeader strip them instead of failing the whole file.
	reader.LazyQuotes = true
	// No TrimLeadingSpace: with a tab delimiter it would swallow the empty
	// fields tab-separated exports use for blank cells. Headers and fields
	// are trimmed on access instead.

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("missing header row")}
	}

	t := &Table{
		columns: make([]string, len(records[0])),
		index:   make(map[string]int, len(records[0])),
		rows:    records[1:],
	}
	for i, name := range records[0] {
		cleaned := cleanHeader(name)
		t.columns[i] = cleaned
		if _, ok := t.index[cleaned]; !ok {
			t.index[cleaned] = i
		}
	}

	return t, nil
}

// detectDelimiter picks the field separator from the header line. Tab wins
// over comma, comma over semicolon. A header without any known separator is
// treated as a single-column comma file.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	switch {
	case bytes.ContainsRune(line, '\t'):
		return '\t'
	case bytes.ContainsRune(line, ','):
		return ','
	case bytes.ContainsRune(line, ';'):
		return ';'
	default:
		return ','
	}
}

// cleanHeader strips surrounding whitespace and stray double quotes from a
// column name.
func cleanHeader(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
}

// Columns returns the normalized column names in file order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Require verifies that every named column is present. Missing columns are
// collected into a single FormatError so the caller can report them all at
// once.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, name := range columns {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Columns: missing}
	}
	return nil
}

// Field returns the trimmed value of the named column in the given row.
// Unknown columns and out-of-range rows yield an empty string.
func (t *Table) Field(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

// Write emits the table as comma-separated text with a header row. Output is
// always comma-delimited regardless of the delimiter the table was loaded
// with.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
