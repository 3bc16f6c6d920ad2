package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of all input-validation failures. Wrap it with
// field detail: fmt.Errorf("%w: title is required", ErrValidation).
var ErrValidation = errors.New("validation failed")

// Validationf builds a field-level validation error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
