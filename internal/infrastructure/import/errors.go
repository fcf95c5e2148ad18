package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Row error codes
const (
	ErrCodeRequiredField  = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType    = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidFormat  = "ERR_IMPORT_INVALID_FORMAT"
	ErrCodeMalformedRow   = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeMissingParent  = "ERR_IMPORT_MISSING_PARENT"
	ErrCodeAmbiguousMatch = "ERR_IMPORT_AMBIGUOUS_MATCH"
)

// Common parse errors
var (
	ErrEmptyFile       = errors.New("source file is empty")
	ErrInvalidEncoding = errors.New("invalid file encoding")
	ErrMissingHeader   = errors.New("source file missing header row")
)

// RowError pins a failure to a specific row and column so staff can fix
// the source file
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}

// NewRowErrorWithValue creates a RowError carrying the offending value
func NewRowErrorWithValue(row int, column, code, message, value string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message, Value: value}
}

// ErrorCollection accumulates row errors with a cap on how many are kept
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection keeping at most maxErrors entries
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Add records an error, dropping the detail once the cap is reached
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field
func (ec *ErrorCollection) AddRequired(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeRequiredField,
		fmt.Sprintf("field %q is required", column)))
}

// AddType records a type mismatch with the offending value
func (ec *ErrorCollection) AddType(row int, column, expected, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeInvalidType,
		fmt.Sprintf("expected %s", expected), value))
}

// AddFormat records a format violation with the offending value
func (ec *ErrorCollection) AddFormat(row int, column, expected, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeInvalidFormat,
		fmt.Sprintf("invalid format, expected %s", expected), value))
}

// Errors returns the kept errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns all errors seen, including dropped ones
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors reports whether anything was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated reports whether the cap dropped error details
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// String renders the collection for logs
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.totalCount)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}
