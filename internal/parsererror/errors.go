// Package parsererror holds the error taxonomy of the payment builder.
//
// Batch-fatal input problems are identified by the sentinels ErrEmptyInput,
// ErrMalformedAmount and ErrMalformedDate; match them with errors.Is. The
// structured types carry the context (field, raw value, line, file) and can be
// extracted with errors.As.
package parsererror

import (
	"errors"
	"fmt"
)

// Code is the stable, machine-readable name of an error class.
type Code string

const (
	CodeEmptyInput      Code = "EMPTY_INPUT"
	CodeMalformedAmount Code = "MALFORMED_AMOUNT"
	CodeMalformedDate   Code = "MALFORMED_DATE"
)

// codedError is a sentinel with a Code.
type codedError struct {
	code Code
	msg  string
}

func (e *codedError) Error() string { return e.msg }

// Code returns the error class code.
func (e *codedError) Code() Code { return e.code }

var (
	// ErrEmptyInput means the input has no header line.
	ErrEmptyInput error = &codedError{code: CodeEmptyInput, msg: "input is empty: no header line"}
	// ErrMalformedAmount means a decimal field could not be parsed.
	ErrMalformedAmount error = &codedError{code: CodeMalformedAmount, msg: "malformed amount"}
	// ErrMalformedDate means a date field did not match YYYY-MM-DD.
	ErrMalformedDate error = &codedError{code: CodeMalformedDate, msg: "malformed date"}
)

// CodeOf returns the Code of the first sentinel found in err's chain, or "".
func CodeOf(err error) Code {
	var c *codedError
	if errors.As(err, &c) {
		return c.code
	}
	return ""
}

// ParseError is a typed-coercion failure for a single field.
type ParseError struct {
	Field string
	Value string
	Kind  error // one of the sentinels
	Err   error // underlying library error, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: failed to parse %s='%s': %v", e.Kind, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s'", e.Kind, e.Field, e.Value)
}

// Unwrap exposes both the sentinel and the library cause.
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// LineError ties an error to a 1-based input line (the header is line 1).
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("error parsing line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// RawValue returns the offending raw value when the cause is a ParseError.
func (e *LineError) RawValue() string {
	var pe *ParseError
	if errors.As(e.Err, &pe) {
		return pe.Value
	}
	return ""
}

// FileError is a failure processing one input file in a batch.
type FileError struct {
	FilePath string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("processing %s: %v", e.FilePath, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ValidationError reports a structural problem found in a generated message.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError means an input file is not in a supported format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
