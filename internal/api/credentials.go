package api

import (
	"strings"

	"github.com/phrazzld/storyforge-api/internal/generation"
)

// resolveAPIKey picks the credential for a request: the key sent by the
// caller, then the server's configured key.
func resolveAPIKey(requestKey, serverKey string) (string, error) {
	if key := strings.TrimSpace(requestKey); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(serverKey); key != "" {
		return key, nil
	}
	return "", generation.ErrMissingCredential
}
