// Package errors provides custom error types for catalog operations.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNullReference      = errors.New("null reference")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrAccessDenied       = errors.New("access denied")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerExists     = errors.New("customer already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ProductNotFoundError is returned when no product entry exists for the requested ID.
// It matches ErrProductNotFound with errors.Is.
type ProductNotFoundError struct {
	ID string
}

// NewProductNotFound creates a ProductNotFoundError for the given ID.
func NewProductNotFound(id string) error {
	return &ProductNotFoundError{ID: id}
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("No product entry found with id: <%s>", e.ID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// ValidationError describes a rejected product state.
// Kind is either ErrNullReference (a required value is missing) or ErrInvalidArgument (a value is malformed).
type ValidationError struct {
	Kind    error
	Message string
}

// NullReference creates a ValidationError for a missing required value.
func NullReference(message string) error {
	return &ValidationError{Kind: ErrNullReference, Message: message}
}

// InvalidArgument creates a ValidationError for a malformed value.
func InvalidArgument(format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
