package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity ID is absent from its
// collection. Backends translate their own not-found sentinels
// (e.g. gorm.ErrRecordNotFound) into this one at their edge.
var ErrNotFound = errors.New("entity not found")

// ErrStorageUnavailable is returned when an operation failed on the
// primary backend and the fallback backend failed as well, or when no
// usable backend exists at all.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ValidationError reports an input that violates a required-field or
// range invariant. The operation is aborted with no partial write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isStorageError reports whether err indicates a backend I/O problem
// rather than a caller mistake; only storage errors trigger the
// primary-to-fallback switch.
func isStorageError(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound) && !IsValidationError(err)
}
