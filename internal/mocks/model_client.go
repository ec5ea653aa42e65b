package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/storyforge-api/internal/generation"
)

// MockModelClient implements generation.ModelClient and generation.CredentialProber
// for testing.
type MockModelClient struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt, apiKey string, tier generation.Tier) (string, error)

	// ProbeFn allows test cases to mock the Probe behavior
	ProbeFn func(ctx context.Context, apiKey string) error

	// Default response values
	Text string
	Err  error

	mu    sync.Mutex
	calls []CompleteCall
}

// CompleteCall records the arguments of one Complete call.
type CompleteCall struct {
	Prompt string
	APIKey string
	Tier   generation.Tier
}

// Complete implements the generation.ModelClient interface
func (m *MockModelClient) Complete(
	ctx context.Context,
	prompt, apiKey string,
	tier generation.Tier,
) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompleteCall{Prompt: prompt, APIKey: apiKey, Tier: tier})
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt, apiKey, tier)
	}
	return m.Text, m.Err
}

// Probe implements the generation.CredentialProber interface
func (m *MockModelClient) Probe(ctx context.Context, apiKey string) error {
	if m.ProbeFn != nil {
		return m.ProbeFn(ctx, apiKey)
	}
	_, err := m.Complete(ctx, generation.ProbePrompt, apiKey, generation.TierFast)
	return err
}

// Calls returns a copy of the recorded Complete calls.
func (m *MockModelClient) Calls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleteCall(nil), m.calls...)
}

// CallCount returns how many times Complete was called.
func (m *MockModelClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// NewMockModelClientWithText creates a MockModelClient that returns text
func NewMockModelClientWithText(text string) *MockModelClient {
	return &MockModelClient{Text: text}
}

// NewMockModelClientWithError creates a MockModelClient that fails every call with err
func NewMockModelClientWithError(err error) *MockModelClient {
	return &MockModelClient{Err: err}
}

// MockModelClientThatTimesOut creates a MockModelClient that simulates an
// upstream timeout
func MockModelClientThatTimesOut() *MockModelClient {
	return &MockModelClient{Err: errors.Join(generation.ErrTransport, generation.ErrTimeout)}
}

// MockModelClientWithContentBlocked creates a MockModelClient that simulates
// the model's safety filters blocking the prompt
func MockModelClientWithContentBlocked() *MockModelClient {
	return &MockModelClient{Err: generation.ErrContentBlocked}
}
