// Package apperr defines the sentinel errors the stores return and the
// request boundary translates into HTTP statuses. Anything that does not
// wrap one of these is treated as a persistence failure.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range caller input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a target row that is missing or not visible.
	ErrNotFound = errors.New("not found")
	// ErrPayload marks a request body that could not be decoded.
	ErrPayload = errors.New("malformed request body")
)

// Validationf wraps ErrValidation with a caller-facing detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
