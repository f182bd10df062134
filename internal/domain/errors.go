package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrInvalidInput          = errors.New("invalid input")
	ErrTimeout               = errors.New("encoder timed out")
	ErrEncodingFailed        = errors.New("encoding failed")
	ErrIOFailure             = errors.New("i/o failure")

	ErrInvalidRegistry = errors.New("invalid strategy registry")
)

// ConversionError carries one of the conversion error kinds together with the
// diagnostic context collected while converting. Kind is always one of the
// Err* sentinels above, so callers match it with errors.Is.
type ConversionError struct {
	Kind     error
	Op       string
	Output   string // combined encoder output, if any
	ExitCode int    // -1 when the encoder did not exit normally
	Err      error
}

func NewConversionError(kind error, op string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Op: op, ExitCode: -1, Err: err}
}

func (e *ConversionError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.ExitCode >= 0 && errors.Is(e.Kind, ErrEncodingFailed) {
		msg = fmt.Sprintf("%s (exit code %d)", msg, e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool {
	return target == e.Kind
}

// KindOf returns a short stable name for the error kind of err, or "" for nil.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedConversion):
		return "unsupported_conversion"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrEncodingFailed):
		return "encoding_failed"
	case errors.Is(err, ErrIOFailure):
		return "io_failure"
	default:
		return "internal"
	}
}
