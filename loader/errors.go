package loader

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an uploaded CSV. The
// message lists both the missing columns and the columns actually found so
// the uploader can see what went wrong.
type SchemaError struct {
	FileType string
	Missing  []string
	Found    []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s CSV missing required columns: [%s]. Found columns: [%s]",
		e.FileType, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// EmptyInputError reports a CSV with headers but zero data rows.
type EmptyInputError struct {
	FileType string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s CSV is empty", e.FileType)
}

// ParseError reports a cell that could not be parsed, currently always a date.
type ParseError struct {
	FileType string
	Column   string
	Value    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s CSV has unparseable %s value: %q", e.FileType, e.Column, e.Value)
}
