package service

import (
	"errors"
	"fmt"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredential indicates the model rejected or could not serve a
	// probe with the supplied key for a reason other than quota or access.
	ErrInvalidCredential = errors.New("API key is invalid")
)

// ServiceError wraps unexpected failures with the operation that produced them.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_service", "verify_credential")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
