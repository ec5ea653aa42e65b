package api

import (
	"context"

	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGenerationService mocks the service.GenerationService interface
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(
	ctx context.Context,
	req domain.GenerationRequest,
	apiKey string,
) (domain.Artifact, error) {
	args := m.Called(ctx, req, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Artifact), args.Error(1)
}

func (m *MockGenerationService) GenerateChapter(
	ctx context.Context,
	req domain.ChapterRequest,
	apiKey string,
) (*domain.ChapterResult, error) {
	args := m.Called(ctx, req, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChapterResult), args.Error(1)
}

// MockCredentialService mocks the service.CredentialService interface
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Verify(ctx context.Context, apiKey string) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}
