package generation

import "context"

// Tier is a named quality/latency level of the language model.
type Tier string

// Available tiers.
const (
	// TierFast is the low-latency model, also the fallback target.
	TierFast Tier = "fast"

	// TierQuality is the high-quality model used for content generation.
	TierQuality Tier = "quality"
)

// ModelClient defines the boundary between the application core and an
// external language model. Implementations own authentication, timeouts,
// retries and tier fallback; callers only see the final text or error.
type ModelClient interface {
	// Complete sends prompt to the model of the given tier using apiKey and
	// returns the text of the first candidate.
	Complete(ctx context.Context, prompt, apiKey string, tier Tier) (string, error)
}

// CredentialProber checks that an API key can obtain a minimal completion.
type CredentialProber interface {
	Probe(ctx context.Context, apiKey string) error
}
