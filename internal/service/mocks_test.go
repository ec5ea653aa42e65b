package service

import (
	"context"

	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/stretchr/testify/mock"
)

// MockModelClient mocks the generation.ModelClient interface
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Complete(ctx context.Context, prompt, apiKey string, tier generation.Tier) (string, error) {
	args := m.Called(ctx, prompt, apiKey, tier)
	return args.String(0), args.Error(1)
}

// MockCredentialProber mocks the generation.CredentialProber interface
type MockCredentialProber struct {
	mock.Mock
}

func (m *MockCredentialProber) Probe(ctx context.Context, apiKey string) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}
