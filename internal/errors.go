package internal

import "errors"

// Recoverable error taxonomy. Flow handlers match with errors.Is and answer
// with a re-prompt or an informational notice instead of failing the event.
var (
	// ErrInvalidFormat: free-text input cannot be parsed as the expected type.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrOutOfRange: parsed value violates the declared bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrNotFound: the referenced record is missing or owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDone: the record is already in the requested state.
	ErrAlreadyDone = errors.New("already in target state")
	// ErrStoreUnavailable: a persistence call failed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
