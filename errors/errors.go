// Package errors provides an API for errors across the application.
package errors

import (
	"errors"
	"fmt"
)

// RequestError wraps an error with the HTTP status code handlers should
// respond with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// AccountNotFoundError is returned when an account id is not present in the
// registry. Recoverable by the caller.
type AccountNotFoundError struct {
	ID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account with id %q not found", e.ID)
}

// DuplicateNameError is returned when a rename would collide with the name of
// another account. Recoverable by the caller.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("account name %q is already in use", e.Name)
}

// UnknownKeyringKindError is returned when a keyring reports a kind the
// wallet has no display label for. Fatal for the reconciliation pass that
// encountered it; the previous registry state is kept.
type UnknownKeyringKindError struct {
	Kind string
}

func (e *UnknownKeyringKindError) Error() string {
	return fmt.Sprintf("unknown keyring kind %q", e.Kind)
}

func IsAccountNotFound(err error) bool {
	var target *AccountNotFoundError
	return errors.As(err, &target)
}

func IsDuplicateName(err error) bool {
	var target *DuplicateNameError
	return errors.As(err, &target)
}

func IsUnknownKeyringKind(err error) bool {
	var target *UnknownKeyringKindError
	return errors.As(err, &target)
}
