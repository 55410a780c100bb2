// Package apperr defines the error kinds shared across the application.
// Callers wrap these sentinels with context using fmt.Errorf and "%w",
// and test for a kind with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks a missing or empty required field.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate marks a name collision in the roster or price list.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrNotFound marks an id or reference that cannot be resolved.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange marks a positional index outside its collection.
	ErrOutOfRange = errors.New("index out of range")

	// ErrParse marks a date or time string in an unrecognized format.
	ErrParse = errors.New("unrecognized format")

	// ErrRemoteUnavailable marks a failed remote call or a mirror that is
	// not connected.
	ErrRemoteUnavailable = errors.New("remote mirror unavailable")

	// ErrNotConfirmed marks a destructive operation executed without a
	// valid confirmation ticket.
	ErrNotConfirmed = errors.New("operation not confirmed")
)

// IsNoop reports whether err only signals that there was nothing to act
// on. Delete and toggle handlers treat these as no-ops.
func IsNoop(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrOutOfRange)
}
