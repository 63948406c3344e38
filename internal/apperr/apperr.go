// Package apperr defines the error kinds every service in the module reports:
// not found, conflict, validation and auth. Each package declares its own
// sentinel errors on top of these kinds so handlers can map them to HTTP
// status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("unauthorized")
)

// Error carries a human readable message together with its kind.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

// Kind returns the sentinel kind of e.
func (e *Error) Kind() error {
	return e.kind
}

func NotFound(message string) *Error {
	return &Error{kind: ErrNotFound, message: message}
}

func Conflict(message string) *Error {
	return &Error{kind: ErrConflict, message: message}
}

func Validation(message string) *Error {
	return &Error{kind: ErrValidation, message: message}
}

func Auth(message string) *Error {
	return &Error{kind: ErrAuth, message: message}
}

// Message returns the user facing message of err when it is (or wraps) an
// *Error, and fallback otherwise.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.message
	}
	return fallback
}
