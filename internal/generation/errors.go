package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package and its adapters.
var (
	// ErrInvalidConfig is returned when a client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrMissingCredential is returned when no API key is available for a call.
	ErrMissingCredential = errors.New("API key is required")

	// ErrQuotaExceeded is returned when the upstream API answers 429.
	ErrQuotaExceeded = errors.New("API quota exceeded")

	// ErrAccessDenied is returned when the upstream API answers 403.
	ErrAccessDenied = errors.New("API access denied")

	// ErrUpstreamStatus is returned for any other non-2xx upstream answer.
	ErrUpstreamStatus = errors.New("language model API error")

	// ErrTransport is returned when the upstream endpoint could not be reached.
	ErrTransport = errors.New("failed to reach language model API")

	// ErrTimeout is returned alongside ErrTransport when a call hit its deadline.
	ErrTimeout = errors.New("language model API call timed out")

	// ErrContentBlocked is returned when the model blocks the prompt or the
	// completion through its safety filters. Retrying the same prompt is pointless.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyCompletion is returned when the response carries no usable text.
	ErrEmptyCompletion = errors.New("language model returned no content")

	// ErrMalformedOutput is returned when model text cannot be turned into the
	// expected structure.
	ErrMalformedOutput = errors.New("invalid response from language model")
)

// parseErrorSnippetLength bounds the raw text carried by ParseError.
const parseErrorSnippetLength = 300

// ParseError reports that no JSON object could be located in model output.
// Snippet holds the first characters of the raw text for diagnostics.
type ParseError struct {
	Snippet string
}

func newParseError(raw string) *ParseError {
	runes := []rune(raw)
	if len(runes) > parseErrorSnippetLength {
		runes = runes[:parseErrorSnippetLength]
	}
	return &ParseError{Snippet: string(runes)}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from model output: %q", e.Snippet)
}

// Unwrap lets callers match parse failures with errors.Is(err, ErrMalformedOutput).
func (e *ParseError) Unwrap() error {
	return ErrMalformedOutput
}

// IsRetryable reports whether a failed call may succeed when repeated with the
// same prompt and credential. Access denial and content errors are terminal.
func IsRetryable(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrAccessDenied) &&
		!errors.Is(err, ErrContentBlocked) &&
		!errors.Is(err, ErrEmptyCompletion)
}
