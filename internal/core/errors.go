package core

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested record does not exist (or belongs to a
// different owner, which callers must not be able to distinguish).
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials indicates a failed authentication attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports a rejected operation with the offending field
// identified. No partial mutation is ever applied alongside one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
