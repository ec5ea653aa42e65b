// Package gemini implements generation.ModelClient and generation.CredentialProber
// against the Gemini generateContent REST endpoint.
//
// The package is an infrastructure adapter: it owns everything about talking to
// the external model and nothing about what the prompts mean. Callers hand it a
// prompt, a credential and a tier and get back text or a classified error.
//
// Reliability is layered, innermost first:
//
//  1. Authentication: each HTTP call tries the credential as the
//     x-goog-api-key header, then, only after a transport failure, as the
//     "key" query parameter.
//  2. Timeouts: every HTTP call runs under its tier's deadline. A timed-out
//     call is cancelled before the next one starts.
//  3. Retries: fast-tier operations are retried with linear backoff
//     (attempt N waits N x base delay) unless the error is terminal.
//  4. Tier fallback: a failed quality-tier call is re-run on the fast tier.
//     When the fallback also fails the quality-tier error is returned.
//
// Request and response bodies use the wire types of google.golang.org/genai;
// transport goes through go-resty so tests can inject an *http.Client.
package gemini
