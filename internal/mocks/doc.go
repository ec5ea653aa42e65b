// Package mocks provides centralized mock implementations for testing.
//
// Mocks here use function fields so a test can override just the behavior it
// cares about, with call tracking for verification:
//
//	model := &mocks.MockModelClient{
//	    CompleteFn: func(ctx context.Context, prompt, apiKey string, tier generation.Tier) (string, error) {
//	        return `{"content": "..."}`, nil
//	    },
//	}
//
// Package-local testify mocks remain the norm for service interfaces; this
// package holds the mocks shared by several packages.
package mocks
