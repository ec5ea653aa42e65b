package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "validation error",
			err:            fmt.Errorf("%w: missing required fields: topic", domain.ErrValidation),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unsupported content type",
			err:            domain.ErrUnsupportedContentType,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing credential",
			err:            generation.ErrMissingCredential,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "quota exceeded",
			err:            fmt.Errorf("probe: %w", generation.ErrQuotaExceeded),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "access denied",
			err:            generation.ErrAccessDenied,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid credential",
			err:            fmt.Errorf("%w: %w", service.ErrInvalidCredential, generation.ErrUpstreamStatus),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "upstream error",
			err:            generation.ErrUpstreamStatus,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unknown error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: msgUnexpected},
		{
			name:     "validation error is returned verbatim",
			err:      fmt.Errorf("%w: missing required fields: language", domain.ErrValidation),
			expected: "validation failed: missing required fields: language",
		},
		{name: "missing credential", err: generation.ErrMissingCredential, expected: msgMissingCredential},
		{name: "quota exceeded", err: generation.ErrQuotaExceeded, expected: msgQuotaExceeded},
		{name: "access denied", err: generation.ErrAccessDenied, expected: msgAccessDenied},
		{
			// Quota wins over the generic invalid-key message.
			name:     "invalid credential wrapping quota",
			err:      fmt.Errorf("%w: %w", service.ErrInvalidCredential, generation.ErrQuotaExceeded),
			expected: msgQuotaExceeded,
		},
		{name: "invalid credential", err: service.ErrInvalidCredential, expected: msgInvalidCredential},
		{
			name:     "internal error text is hidden",
			err:      errors.New("dial tcp 10.0.0.1:443: connection refused"),
			expected: msgUnexpected,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required"`
		Count int    `json:"count" validate:"gte=0"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("json")
	})

	err := v.Struct(payload{Count: -1})
	require.Error(t, err)

	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(err))
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid title: required field", GetSafeErrorMessage(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestGetValidationTagMessage(t *testing.T) {
	assert.Equal(t, "required field", getValidationTagMessage("required"))
	assert.Equal(t, "too small", getValidationTagMessage("gte"))
	assert.Equal(t, "too large", getValidationTagMessage("max"))
	assert.Equal(t, "invalid value", getValidationTagMessage("oneof"))
	assert.Equal(t, "validation failed", getValidationTagMessage("email"))
}
