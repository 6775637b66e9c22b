package service

import "fmt"

// Domain failures carry the offending id so handlers can map them to status
// codes and machine-readable error codes. Infrastructure errors (connection
// loss, constraint violations inside a transaction) are never wrapped into
// these — they propagate unchanged.

type BookNotFoundError struct{ BookID uint }

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book %d not found", e.BookID)
}

type PersonNotFoundError struct{ PersonID uint }

func (e *PersonNotFoundError) Error() string {
	return fmt.Sprintf("person %d not found", e.PersonID)
}

type UserNotFoundError struct{ UserID uint }

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.UserID)
}

// BookUnavailableError is raised when the availability flag is false or an
// active loan exists for the book — either way the book cannot be borrowed.
type BookUnavailableError struct{ BookID uint }

func (e *BookUnavailableError) Error() string {
	return fmt.Sprintf("book %d is unavailable for borrowing", e.BookID)
}

type NoActiveLoanError struct{ BookID uint }

func (e *NoActiveLoanError) Error() string {
	return fmt.Sprintf("no active loan for book %d", e.BookID)
}

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

type InvalidDataError struct {
	Field string
	Value string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("field %q has invalid value %q", e.Field, e.Value)
}

type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string { return "invalid credentials" }
