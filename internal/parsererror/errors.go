// Package parsererror holds the typed errors raised while reading and
// normalizing disclosure spreadsheets. None of them aborts a batch: callers
// log them and continue with zero records for the affected file or row.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError reports a cell that could not be coerced to the expected type.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HeaderNotFoundError is returned when no row of a grid carries one of the
// donor-name header labels.
type HeaderNotFoundError struct {
	FilePath string
	Labels   []string
}

func (e *HeaderNotFoundError) Error() string {
	target := e.FilePath
	if target == "" {
		target = "grid"
	}
	return fmt.Sprintf("no header row found in %s (looked for %s)",
		target, strings.Join(e.Labels, ", "))
}

// SourceError wraps a failure to read one year's input file.
type SourceError struct {
	Year     int
	FilePath string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %d (%s) unavailable: %v", e.Year, e.FilePath, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// InvalidFormatError is returned when a file is not a spreadsheet format the
// readers understand.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
