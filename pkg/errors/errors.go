// Package errors defines the coded errors returned across barchart.
//
// Every error carries a [Code] next to its message. Codes fall into a
// [Kind] (invalid input, not found, backend unavailable, unsupported or
// internal) that the CLI and the HTTP server map to exit messages and
// status codes without matching strings:
//
//	err := errors.New(errors.ErrCodeChartTooSmall, "%d bars need at least %dpx", n, n)
//	errors.Is(err, errors.ErrCodeChartTooSmall) // true
//	errors.IsInvalid(err)                       // true
//
//	err = errors.Wrap(errors.ErrCodeNetwork, cause, "load dataset %s", name)
//	errors.KindOf(err) == errors.KindUnavailable
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidData   Code = "INVALID_DATA"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeChartTooSmall Code = "CHART_TOO_SMALL"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeDatasetNotFound Code = "DATASET_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind groups codes by who is at fault.
type Kind int

const (
	KindInternal    Kind = iota // a bug or an unclassified failure
	KindInvalid                 // the caller sent bad input
	KindNotFound                // the named resource does not exist
	KindUnavailable             // a backend could not be reached
	KindUnsupported             // the feature is missing in this build or environment
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:    KindInvalid,
	ErrCodeInvalidConfig:   KindInvalid,
	ErrCodeInvalidData:     KindInvalid,
	ErrCodeInvalidFormat:   KindInvalid,
	ErrCodeInvalidPath:     KindInvalid,
	ErrCodeChartTooSmall:   KindInvalid,
	ErrCodeNotFound:        KindNotFound,
	ErrCodeDatasetNotFound: KindNotFound,
	ErrCodeFileNotFound:    KindNotFound,
	ErrCodeNetwork:         KindUnavailable,
	ErrCodeTimeout:         KindUnavailable,
	ErrCodeUnsupported:     KindUnsupported,
}

// Kind returns the category of c. Unknown codes are internal.
func (c Code) Kind() Kind { return kinds[c] }

// Error carries a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// KindOf returns the kind of err's code. Errors without a code are internal.
func KindOf(err error) Kind { return GetCode(err).Kind() }

// IsInvalid reports whether err is the caller's fault: an INVALID_* code
// or CHART_TOO_SMALL.
func IsInvalid(err error) bool { return KindOf(err) == KindInvalid }

// IsNotFound reports whether err carries one of the not-found codes.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// UserMessage returns the message without code prefix or cause, falling
// back to err.Error() for plain errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
