package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyActive   = errors.New("already active")
	ErrInvalidUserType = errors.New("invalid user type")
)

// ValidationError reports malformed or missing caller input. The request
// itself has to change; retrying does not help.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DependencyBlockedError is returned when a delete is refused because other
// non-deleted rows still reference the target. Dependents holds every blocking
// kind, not just the first one found.
type DependencyBlockedError struct {
	Dependents []string
}

func (e *DependencyBlockedError) Error() string {
	return fmt.Sprintf("cannot delete: still referenced by %s", strings.Join(e.Dependents, ", "))
}

// IsDependencyBlocked reports whether err is (or wraps) a DependencyBlockedError.
func IsDependencyBlocked(err error) bool {
	var de *DependencyBlockedError
	return errors.As(err, &de)
}
