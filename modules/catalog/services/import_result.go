package services

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies import errors per the propagation policy: validation
// and duplicate findings are recorded and skipped, system errors abort the
// sheet they occur in.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindDuplicate  ErrorKind = "duplicate"
	ErrorKindSystem     ErrorKind = "system"
)

type ImportError struct {
	Field     string    `json:"field"`
	Message   string    `json:"message"`
	Kind      ErrorKind `json:"type"`
	RowNumber int       `json:"rowNumber,omitempty"`
}

// ImportResult is the complete outcome of one workbook import. It is always
// returned to the caller, also on partial failure; only store/connectivity
// faults surface as system-kind entries.
type ImportResult struct {
	SuccessfulRecords int           `json:"successfulRecords"`
	FailedRecords     int           `json:"failedRecords"`
	Errors            []ImportError `json:"errors"`
	Messages          []string      `json:"messages"`
}

func NewImportResult() *ImportResult {
	return &ImportResult{
		Errors:   []ImportError{},
		Messages: []string{},
	}
}

// Success reports whether the import completed without a single failed row
// and produced at least one record.
func (r *ImportResult) Success() bool {
	return r.FailedRecords == 0 && r.SuccessfulRecords > 0
}

// MarshalJSON includes the derived success flag in the wire shape.
func (r *ImportResult) MarshalJSON() ([]byte, error) {
	type alias ImportResult
	return json.Marshal(struct {
		Success bool `json:"success"`
		*alias
	}{Success: r.Success(), alias: (*alias)(r)})
}

func (r *ImportResult) AddValidationError(field, message string, rowNumber int) {
	r.Errors = append(r.Errors, ImportError{
		Field:     field,
		Message:   message,
		Kind:      ErrorKindValidation,
		RowNumber: rowNumber,
	})
	r.FailedRecords++
}

// AddFieldError records a validation error without touching the row
// counters. A row with several bad fields gets one entry per field but still
// fails only once; the caller accounts for the row.
func (r *ImportResult) AddFieldError(field, message string, rowNumber int) {
	r.Errors = append(r.Errors, ImportError{
		Field:     field,
		Message:   message,
		Kind:      ErrorKindValidation,
		RowNumber: rowNumber,
	})
}

func (r *ImportResult) AddDuplicateWarning(field, message string, rowNumber int) {
	r.Errors = append(r.Errors, ImportError{
		Field:     field,
		Message:   message,
		Kind:      ErrorKindDuplicate,
		RowNumber: rowNumber,
	})
	r.FailedRecords++
}

// AddSystemError records a store-level failure. Row accounting is done by
// the caller, which knows how many buffered rows the failure affects.
func (r *ImportResult) AddSystemError(field string, err error) {
	r.Errors = append(r.Errors, ImportError{
		Field:   field,
		Message: err.Error(),
		Kind:    ErrorKindSystem,
	})
}

func (r *ImportResult) AddMessage(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}
