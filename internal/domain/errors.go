// Package domain defines the core request/result types and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request fails validation.
	// It is always wrapped with a message naming the offending fields.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedContentType is returned for a content type outside the known set.
	ErrUnsupportedContentType = errors.New("unsupported content type")
)
