package domain

import "errors"

var (
	ErrInvalidLength   = errors.New("invalid name length")
	ErrDuplicateName   = errors.New("duplicate list name")
	ErrListNotFound    = errors.New("list not found")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError describes a rejected name. Subject is the user-facing noun,
// e.g. "List name" or "Todo name".
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidLength):
		return e.Subject + " must be between 1 and 100 characters."
	case errors.Is(e.Err, ErrDuplicateName):
		return e.Subject + " must be unique."
	default:
		return e.Subject + " is invalid."
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
