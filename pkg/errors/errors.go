// Package errors defines the error kinds shared across the pipeline and a
// wrapper type carrying the offending file and record for user-facing
// diagnostics.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration            = errors.New("invalid configuration")
	ErrMalformedFrequencyFile   = errors.New("malformed frequency file")
	ErrMalformedReferenceLine   = errors.New("malformed reference line")
	ErrDocumentRead             = errors.New("document read failed")
	ErrUnknownDocumentReference = errors.New("document has no reference entry")
)

// PipelineError attaches a message and, where applicable, the source file and
// record number to one of the sentinel error kinds above.
type PipelineError struct {
	Err     error
	Message string
	File    string
	Record  int
}

func (e *PipelineError) Error() string {
	switch {
	case e.File != "" && e.Record > 0:
		return fmt.Sprintf("%s: %s (%s, record %d)", e.Err.Error(), e.Message, e.File, e.Record)
	case e.File != "":
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.File)
	default:
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel error with a message.
func New(sentinel error, message string) *PipelineError {
	return &PipelineError{
		Err:     sentinel,
		Message: message,
	}
}

// Newf wraps a sentinel error with a formatted message.
func Newf(sentinel error, format string, args ...any) *PipelineError {
	return &PipelineError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// InFile wraps a sentinel error with the file it was found in and, when
// record > 0, the 1-based record number.
func InFile(sentinel error, file string, record int, format string, args ...any) *PipelineError {
	return &PipelineError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Record:  record,
	}
}

// ExitCode maps an error to the process exit status used by the CLIs.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	case errors.Is(err, ErrMalformedFrequencyFile),
		errors.Is(err, ErrMalformedReferenceLine):
		return 3
	case errors.Is(err, ErrUnknownDocumentReference):
		return 4
	default:
		return 1
	}
}
