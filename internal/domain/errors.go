package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError is the base for the service's typed errors.
type DomainError struct {
	Code    string
	Message string
	cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// ValidationError signals invalid caller input or a disallowed operation.
type ValidationError struct {
	DomainError
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{DomainError{Code: "VALIDATION_ERROR", Message: message}}
}

// NotFoundError signals that a requested resource does not exist.
type NotFoundError struct {
	DomainError
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}}
}

// ConflictError signals a concurrent modification or state conflict.
type ConflictError struct {
	DomainError
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{DomainError{Code: "CONFLICT", Message: message}}
}

// PersistenceError signals that the state change could not be stored. When it
// occurs no side effects have run.
type PersistenceError struct {
	DomainError
}

// NewPersistenceError wraps a storage failure.
func NewPersistenceError(err error) *PersistenceError {
	return &PersistenceError{DomainError{
		Code:    "PERSISTENCE_ERROR",
		Message: "failed to persist state change",
		cause:   err,
	}}
}

// HTTPStatus maps a domain error to its HTTP status code.
func HTTPStatus(err error) int {
	var (
		validationErr  *ValidationError
		notFoundErr    *NotFoundError
		conflictErr    *ConflictError
		persistenceErr *PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
