package gemini

import (
	"strings"
	"time"

	"google.golang.org/genai"
)

// generateContentRequest is the body of a generateContent call.
type generateContentRequest struct {
	Contents []*genai.Content `json:"contents"`
}

func newGenerateContentRequest(prompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []*genai.Content{
			{
				Role:  "user",
				Parts: []*genai.Part{{Text: prompt}},
			},
		},
	}
}

// errorEnvelope is the body of a non-2xx answer.
type errorEnvelope struct {
	Error *genai.APIError `json:"error"`
}

// tierConfig binds a tier to its model and per-call deadline.
type tierConfig struct {
	model   string
	timeout time.Duration
}

// blockedFinishReasons mark candidates stopped by safety or policy filters.
var blockedFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety: true,
	"BLOCKLIST":              true,
	"PROHIBITED_CONTENT":     true,
	"SPII":                   true,
}

// candidateText concatenates the text parts of a candidate, skipping thoughts.
func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
