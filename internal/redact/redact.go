// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. The service handles
// caller-supplied API keys, which can surface in upstream URLs, request dumps
// and error bodies; every error text leaving a component passes through here.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

// rule pairs a pattern with its replacement; replacements may reference
// capture groups so that field names survive redaction.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules consume the most specific shapes.
var rules = []rule{
	// key=... in query strings, e.g. upstream URLs echoed by transport errors
	{
		pattern:     regexp.MustCompile(`([?&](?:key|api_key|apiKey|access_token)=)[^&\s"'#]+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	// Google API keys anywhere in the text
	{
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		replacement: RedactedKeyPlaceholder,
	},
	// Authorization: Bearer <token>
	{
		pattern:     regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/=]{8,}`),
		replacement: "${1}" + RedactedCredentialPlaceholder,
	},
	// key/value pairs in headers, JSON bodies and log lines
	{
		pattern: regexp.MustCompile(
			`(?i)(x-goog-api-key|api[_-]?key|secret|token|password)(['"]?\s*[:=]\s*['"]?)[A-Za-z0-9_\-.~+/]{8,}`,
		),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	// JWT token pattern - three base64url-encoded segments
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
