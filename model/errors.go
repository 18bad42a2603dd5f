package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist for the
// requesting user.
var ErrNotFound = errors.New("entity not found")

// InvalidStateError marks a lifecycle transition attempted from a state that
// does not allow it.
type InvalidStateError struct {
	Op     string
	Detail string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state for %s: %s", e.Op, e.Detail)
}

// ValidationError marks malformed or out-of-range input. The wizard re-issues
// the current prompt on these instead of advancing.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Detail
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
