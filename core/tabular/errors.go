package tabular

import (
	"fmt"
	"strings"
)

// FormatError indicates that a loaded table is missing columns the caller
// requires. Columns holds every missing name, not just the first one found.
type FormatError struct {
	Columns []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ParseError indicates that input could not be decoded as delimited text,
// for example because it is not valid UTF-8 or has inconsistent rows.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse delimited input: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
