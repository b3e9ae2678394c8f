// Package apperr holds the error kinds shared by the storefront packages.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing user input.
// It is safe to show Msg to the user.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Invalid builds a *ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a failed write to a durable store.
// Internal only: logged, never shown to the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError wraps a failed delivery to the mail relay.
// Internal only: logged, never shown to the user.
type NotificationError struct {
	To  string
	Err error
}

func (e *NotificationError) Error() string { return fmt.Sprintf("notify %s: %v", e.To, e.Err) }
func (e *NotificationError) Unwrap() error { return e.Err }
