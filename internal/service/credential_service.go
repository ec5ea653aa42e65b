package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/redact"
)

// CredentialService checks caller-supplied API keys.
type CredentialService interface {
	// Verify returns nil when apiKey can obtain a minimal completion. Failures
	// wrap generation.ErrMissingCredential, generation.ErrQuotaExceeded,
	// generation.ErrAccessDenied or ErrInvalidCredential.
	Verify(ctx context.Context, apiKey string) error
}

type credentialServiceImpl struct {
	prober generation.CredentialProber
	logger *slog.Logger
}

// NewCredentialService creates a CredentialService backed by prober.
func NewCredentialService(prober generation.CredentialProber, logger *slog.Logger) (CredentialService, error) {
	if prober == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "credential prober cannot be nil"}
	}
	if logger == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &credentialServiceImpl{
		prober: prober,
		logger: logger.With("component", "credential_service"),
	}, nil
}

// Verify implements CredentialService.
func (s *credentialServiceImpl) Verify(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return generation.ErrMissingCredential
	}

	err := s.prober.Probe(ctx, apiKey)
	if err == nil {
		s.logger.InfoContext(ctx, "API key verified")
		return nil
	}

	s.logger.WarnContext(ctx, "API key verification failed", "error", redact.Error(err))

	if errors.Is(err, generation.ErrQuotaExceeded) || errors.Is(err, generation.ErrAccessDenied) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
}
