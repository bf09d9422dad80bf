package commands

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrQuotaExceeded    = errors.New("world quota exceeded")
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// wrapUserError creates a user-facing error that still matches err with
// errors.Is.
func wrapUserError(msg string, err error) *UserError {
	return &UserError{Message: msg, Err: err}
}
