package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
	}{
		{name: "valid json", body: `{"title":"a","content":"b"}`},
		{name: "invalid json", body: `{"title":"a",}`, wantErr: true, errContains: "invalid character"},
		{name: "empty body", body: "", wantErr: true, errContains: "empty"},
		{name: "trailing data", body: `{"title":"a"}{"title":"b"}`, wantErr: true, errContains: "unexpected data"},
		{name: "wrong type", body: `{"title":5}`, wantErr: true, errContains: "cannot unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var target sampleRequest

			err := DecodeJSON(httptest.NewRecorder(), req, &target)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "a", target.Title)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestDecodeJSON_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	err := DecodeJSON(httptest.NewRecorder(), req, &sampleRequest{})
	assert.ErrorIs(t, err, ErrEmptyBody)
}

type selfValidating struct{ called bool }

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(sampleRequest{Title: "x"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "content", verrs[0].Field(), "fields are reported by JSON name")

	assert.NoError(t, ValidateRequest(sampleRequest{Title: "x", Content: "y"}))

	custom := &selfValidating{}
	assert.NoError(t, ValidateRequest(custom))
	assert.True(t, custom.called)
}
