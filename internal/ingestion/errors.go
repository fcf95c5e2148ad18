package ingestion

import (
	"errors"
	"fmt"

	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// ErrUnknownReportType is returned when the registry has no pipeline for
// the requested key. A configuration error on the caller's side, not a
// crash.
var ErrUnknownReportType = errors.New("unknown report type")

// SourceReadError signals that the report source could not be opened or
// parsed. Nothing was transformed or loaded; re-uploading the file is a
// full recovery.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read report source %q: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// NewSourceReadError wraps a read failure with the offending source name
func NewSourceReadError(source string, err error) *SourceReadError {
	return &SourceReadError{Source: source, Err: err}
}

// ValidationError rejects a whole batch: one or more rows failed
// required-field or type constraints after cleaning. Partial ingestion of a
// report is explicitly disallowed, so a single bad row fails the run and no
// writes are committed.
type ValidationError struct {
	ReportType string
	RowErrors  []csvimport.RowError
	TotalRows  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("report %q rejected: %d of %d rows failed validation (first: %s)",
		e.ReportType, len(e.RowErrors), e.TotalRows, e.RowErrors[0].Error())
}

// NewValidationError builds a batch rejection from collected row errors
func NewValidationError(reportType string, totalRows int, rowErrors []csvimport.RowError) *ValidationError {
	return &ValidationError{ReportType: reportType, TotalRows: totalRows, RowErrors: rowErrors}
}

// MissingParentError signals a dependent record referencing a buy order
// that does not exist. Fatal for the batch: the transaction rolls back and
// no side effects persist.
type MissingParentError struct {
	Line        int
	OrderNumber string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("row %d: buy order %q does not exist", e.Line, e.OrderNumber)
}

// Warning codes surfaced in a Result
const (
	WarnAmbiguousIdentity = "AMBIGUOUS_IDENTITY"
)

// Warning is a non-fatal data-quality finding recorded during a run
type Warning struct {
	Code    string
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d [%s]: %s", w.Line, w.Code, w.Message)
}
