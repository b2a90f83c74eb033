package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUserInactive       = errors.New("user is inactive")
)

// NotFoundError is the single not-found variant used by the retrieval
// services. It carries a pre-formatted, client-facing message so that
// "record absent" and "record forbidden" are indistinguishable to callers.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NoCollectionsError reports a tenant with no collections at all.
func NoCollectionsError() *NotFoundError {
	return &NotFoundError{Message: "This tenant has no collection"}
}

// NoWorksError reports a tenant with no works at all.
func NoWorksError() *NotFoundError {
	return &NotFoundError{Message: "This tenant has no work"}
}

// RecordNotFoundError reports a record that is either private or absent,
// without revealing which.
func RecordNotFoundError(id string) *NotFoundError {
	return &NotFoundError{
		Message: fmt.Sprintf("This is either a private collection or there is no record with id: %s", id),
	}
}

// WorkNotFoundError is the work-scoped counterpart of RecordNotFoundError.
func WorkNotFoundError(id string) *NotFoundError {
	return &NotFoundError{
		Message: fmt.Sprintf("This is either a private work or there is no record with id: %s", id),
	}
}
