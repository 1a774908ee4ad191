package port

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when the requested entity does not
// exist. It is distinct from an authorization denial.
var ErrNotFound = errors.New("not found")

// ValidationError marks a payload that failed a domain validation rule. The
// message names the specific rule violated and is safe to return to callers.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
