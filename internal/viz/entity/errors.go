package entity

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat means the filename matched neither "csv" nor "xls".
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError wraps the reason bytes could not be decoded as Format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ColumnNotFoundError is returned when a selection names a column that the
// current table does not have, typically a leftover from a previous upload.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in uploaded data", e.Column)
}
