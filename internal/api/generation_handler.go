package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/storyforge-api/internal/api/shared"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/platform/logger"
	"github.com/phrazzld/storyforge-api/internal/redact"
	"github.com/phrazzld/storyforge-api/internal/service"
)

// GenerationHandler serves the generation and key-test endpoints.
type GenerationHandler struct {
	generator    service.GenerationService
	credentials  service.CredentialService
	serverAPIKey string
}

// NewGenerationHandler creates a GenerationHandler. serverAPIKey is used when
// a request carries no key of its own; it may be empty.
func NewGenerationHandler(
	generator service.GenerationService,
	credentials service.CredentialService,
	serverAPIKey string,
) *GenerationHandler {
	return &GenerationHandler{
		generator:    generator,
		credentials:  credentials,
		serverAPIKey: serverAPIKey,
	}
}

// Generate handles POST /api/generate requests
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondBadBody(w, r, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	apiKey, err := resolveAPIKey(req.APIKey, h.serverAPIKey)
	if err != nil {
		respondError(w, r, err)
		return
	}

	artifact, err := h.generator.Generate(r.Context(), req.GenerationRequest, apiKey)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, artifact)
}

// GenerateChapter handles POST /api/generate-chapter requests
func (h *GenerationHandler) GenerateChapter(w http.ResponseWriter, r *http.Request) {
	var req GenerateChapterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondBadBody(w, r, err)
		return
	}

	apiKey, err := resolveAPIKey(req.APIKey, h.serverAPIKey)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.generator.GenerateChapter(r.Context(), req.ChapterRequest, apiKey)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// TestKey handles POST /api/test-key requests. Unlike the generation
// endpoints it uses only the key in the body.
func (h *GenerationHandler) TestKey(w http.ResponseWriter, r *http.Request) {
	var req TestKeyRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondBadBody(w, r, err)
		return
	}

	err := h.credentials.Verify(r.Context(), req.APIKey)
	if err != nil {
		respondError(w, r, err,
			shared.WithDetails(credentialDetails(err)),
			shared.WithElevatedLogLevel())
		return
	}

	logger.FromContext(r.Context()).InfoContext(r.Context(), "API key test succeeded")
	shared.RespondWithJSON(w, r, http.StatusOK, TestKeyResponse{
		Success: true,
		Message: "API key is valid and working",
	})
}

// credentialDetails explains a failed key test.
func credentialDetails(err error) string {
	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return "Send the key to test as apiKey in the request body."
	case errors.Is(err, generation.ErrQuotaExceeded):
		return "The Gemini API answered 429 Too Many Requests for this key."
	case errors.Is(err, generation.ErrAccessDenied):
		return "The Gemini API answered 403 Forbidden. Check that the Generative Language API is enabled for this key."
	default:
		return redact.Error(err)
	}
}

// respondError writes the mapped status and safe message for err.
func respondError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}

// respondBadBody answers a body that could not be decoded. The decoder's
// message is returned as details; it describes the JSON, never the server.
func respondBadBody(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgBadRequestBody, err,
		shared.WithDetails(err.Error()))
}
