package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced to callers. Anything else returned by a service is an
// unexpected storage error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("business rule violation")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a user-facing message for one of the kinds above
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// lookup maps gorm.ErrRecordNotFound to a not-found error with message
func lookup(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("%s", message)
	}
	return err
}
