package errors

import (
	"errors"
	"fmt"
)

// AppError is a coded pipeline error. The code is stable and machine
// readable; the message is for humans. Wrapped causes stay reachable
// through errors.Is/errors.As.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so predefined errors work as sentinels
// even after extra context has been wrapped around them.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a new AppError with the given code and message.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates a new AppError wrapping an underlying cause.
func Wrap(err error, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithMessage returns a copy of the error with a more specific message,
// keeping the code (and therefore sentinel identity) intact.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err}
}

// Predefined pipeline errors.
var (
	// ErrHeaderNotFound is the only fatal parsing condition: no header row
	// was located in the first lines of an export.
	ErrHeaderNotFound = New("HEADER_NOT_FOUND", "no header row found in export")

	// ErrNoTrips signals a well-formed export that yielded zero Bicing
	// trips. It is a caller-level condition, distinct from a header error.
	ErrNoTrips = New("NO_TRIPS", "export parsed but contained no Bicing trips")

	// ErrUnsupportedFormat signals an export file extension the acquisition
	// layer cannot convert to delimited text.
	ErrUnsupportedFormat = New("UNSUPPORTED_FORMAT", "unsupported export file format")

	// ErrFileNotFound signals a missing input file or directory.
	ErrFileNotFound = New("FILE_NOT_FOUND", "input file not found")

	// ErrConfigInvalid signals configuration that failed validation.
	ErrConfigInvalid = New("CONFIG_INVALID", "configuration validation failed")
)
