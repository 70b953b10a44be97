package apperrors

import "errors"

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CustomError wraps one of the sentinels with a message fit for the caller.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// Message returns the caller-facing text of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
