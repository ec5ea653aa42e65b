package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/redact"
	"google.golang.org/genai"
)

// maxErrorDetailLength bounds upstream error text carried in errors.
const maxErrorDetailLength = 500

// transportError classifies a failure to obtain any HTTP response.
func transportError(ctx context.Context, err error) error {
	detail := redact.Error(err)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %s", generation.ErrTransport, generation.ErrTimeout, detail)
	}
	return fmt.Errorf("%w: %s", generation.ErrTransport, detail)
}

// statusError classifies a non-2xx answer.
func statusError(status int, body []byte) error {
	detail := errorDetail(body)
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", generation.ErrQuotaExceeded, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", generation.ErrAccessDenied, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", generation.ErrUpstreamStatus, status, detail)
	}
}

// errorDetail extracts the message of an error body, falling back to the raw
// text. The result is redacted and truncated.
func errorDetail(body []byte) string {
	detail := strings.TrimSpace(string(body))

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		detail = envelope.Error.Message
	}

	return truncate(redact.String(detail), maxErrorDetailLength)
}

// decodeResponse validates a 2xx body and returns the first candidate's text.
func decodeResponse(body []byte) (string, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: status 200: undecodable body: %v", generation.ErrUpstreamStatus, err)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyCompletion)
	}

	candidate := resp.Candidates[0]
	if blockedFinishReasons[candidate.FinishReason] {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}

	text := candidateText(candidate)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: candidate has no text", generation.ErrEmptyCompletion)
	}
	return text, nil
}

// outcomeLabel maps a call result to its metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, generation.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, generation.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, generation.ErrContentBlocked):
		return "blocked"
	case errors.Is(err, generation.ErrEmptyCompletion):
		return "empty"
	case errors.Is(err, generation.ErrTimeout):
		return "timeout"
	case errors.Is(err, generation.ErrTransport):
		return "transport"
	default:
		return "upstream_error"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
