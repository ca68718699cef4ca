// Package apperrors defines the failure taxonomy shared by every store and
// the integrity coordinator. Callers distinguish failures by code, never by
// message text.
package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	// CodeValidation marks malformed or missing input; it never reaches storage.
	CodeValidation Code = "validation"
	// CodeInvalidReference marks a foreign key that does not resolve.
	CodeInvalidReference Code = "invalid_reference"
	// CodeConflict marks a uniqueness violation (email, duplicate clinical status).
	CodeConflict Code = "conflict"
	// CodeNotFound marks an absent target identifier.
	CodeNotFound Code = "not_found"
	// CodeStorage marks an underlying persistence failure, treated as transient.
	CodeStorage Code = "storage"
	// CodePartialFailure marks a cascade that committed its first step but not
	// a dependent one. It must never be collapsed into success or CodeStorage.
	CodePartialFailure Code = "partial_failure"
)

// Error is a coded error. The wrapped cause, when present, is reachable
// through errors.Unwrap for logging; the code is the programmatic contract.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a coded error with no underlying cause.
func E(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// CodeOf extracts the code from err. Errors produced outside this package
// count as storage failures.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStorage
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
