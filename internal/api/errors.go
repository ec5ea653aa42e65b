package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/service"
)

// Messages for credential failures, shown to users as-is.
const (
	msgMissingCredential = "API key is required. Provide an apiKey in the request or set GEMINI_API_KEY on the server."
	msgQuotaExceeded     = "API quota exceeded. The key is valid but has no remaining quota; try again later."
	msgAccessDenied      = "API access denied. The key is not allowed to use the Gemini API."
	msgInvalidCredential = "Invalid API key"
	msgBadRequestBody    = "Failed to process request"
	msgUnexpected        = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Request validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnsupportedContentType),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Credential errors
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrQuotaExceeded),
		errors.Is(err, generation.ErrAccessDenied),
		errors.Is(err, service.ErrInvalidCredential):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var verrs validator.ValidationErrors

	switch {
	// Domain validation messages only name fields and are returned verbatim.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, generation.ErrMissingCredential):
		return msgMissingCredential

	// Quota and access checks come before the generic invalid-key case.
	case errors.Is(err, generation.ErrQuotaExceeded):
		return msgQuotaExceeded

	case errors.Is(err, generation.ErrAccessDenied):
		return msgAccessDenied

	case errors.Is(err, service.ErrInvalidCredential):
		return msgInvalidCredential

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gte", "min":
		return "too small"
	case "lte", "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
