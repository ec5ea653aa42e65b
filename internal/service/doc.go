// Package service contains the application use cases: turning a validated
// request into a writing artifact and checking caller credentials.
//
// GenerationService runs the per-content-type pipeline
// (building-prompt -> calling-model -> parsing -> validating) and replaces any
// failure with a deterministic fallback artifact, so callers always receive a
// complete result. Only request validation errors are returned.
//
// CredentialService probes the model with a caller's API key and classifies
// the outcome for the API layer.
//
// Services depend on the generation.ModelClient and
// generation.CredentialProber interfaces, never on the Gemini adapter itself.
package service
