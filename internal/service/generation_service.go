package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/platform/metrics"
	"github.com/phrazzld/storyforge-api/internal/redact"
)

// minChapterLength is the shortest chapter text, in characters, accepted from
// the model. Shorter output is treated as a degenerate generation.
const minChapterLength = 100

// pipelineState names the steps of one generation, for logging.
type pipelineState string

const (
	stateBuildingPrompt   pipelineState = "building-prompt"
	stateCallingModel     pipelineState = "calling-model"
	stateParsing          pipelineState = "parsing"
	stateValidating       pipelineState = "validating"
	stateBuildingFallback pipelineState = "building-fallback"
	stateDone             pipelineState = "done"
)

// Generation outcomes recorded in metrics.
const (
	outcomeGenerated = "generated"
	outcomeFallback  = "fallback"
)

// GenerationService produces writing artifacts.
type GenerationService interface {
	// Generate returns the artifact for req. Pipeline failures are absorbed
	// into a fallback artifact; only request validation errors are returned.
	Generate(ctx context.Context, req domain.GenerationRequest, apiKey string) (domain.Artifact, error)

	// GenerateChapter returns the prose of one chapter, with the same
	// absorption policy as Generate.
	GenerateChapter(ctx context.Context, req domain.ChapterRequest, apiKey string) (*domain.ChapterResult, error)
}

// generationServiceImpl implements the GenerationService interface
type generationServiceImpl struct {
	model   generation.ModelClient
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewGenerationService creates a GenerationService. recorder may be nil.
func NewGenerationService(
	model generation.ModelClient,
	logger *slog.Logger,
	recorder *metrics.Recorder,
) (GenerationService, error) {
	if model == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "model client cannot be nil"}
	}
	if logger == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &generationServiceImpl{
		model:   model,
		logger:  logger.With("component", "generation_service"),
		metrics: recorder,
	}, nil
}

// Generate implements GenerationService.
func (s *generationServiceImpl) Generate(
	ctx context.Context,
	req domain.GenerationRequest,
	apiKey string,
) (domain.Artifact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, ok := variants[req.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrUnsupportedContentType, req.ContentType)
	}

	log := s.logger.With("content_type", req.ContentType, "language", req.Language)

	artifact, err := s.run(ctx, log, v, req, apiKey)
	if err != nil {
		log.WarnContext(ctx, "Generation failed, using fallback",
			"state", stateBuildingFallback,
			"error", redact.Error(err))
		s.metrics.IncGeneration(string(req.ContentType), outcomeFallback)
		artifact = v.fallback(req, err)
		log.InfoContext(ctx, "Generation finished", "state", stateDone, "outcome", outcomeFallback)
		return artifact, nil
	}

	s.metrics.IncGeneration(string(req.ContentType), outcomeGenerated)
	log.InfoContext(ctx, "Generation finished", "state", stateDone, "outcome", outcomeGenerated)
	return artifact, nil
}

func (s *generationServiceImpl) run(
	ctx context.Context,
	log *slog.Logger,
	v variant,
	req domain.GenerationRequest,
	apiKey string,
) (domain.Artifact, error) {
	log.DebugContext(ctx, "Generation state", "state", stateBuildingPrompt)
	prompt, err := v.prompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	log.DebugContext(ctx, "Generation state", "state", stateCallingModel, "prompt_length", len(prompt))
	raw, err := s.model.Complete(ctx, prompt, apiKey, generation.TierQuality)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "Generation state", "state", stateParsing, "raw_length", len(raw))
	parsed, err := v.parse(raw)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "Generation state", "state", stateValidating)
	return v.validate(parsed, req)
}

// GenerateChapter implements GenerationService.
func (s *generationServiceImpl) GenerateChapter(
	ctx context.Context,
	req domain.ChapterRequest,
	apiKey string,
) (*domain.ChapterResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.With("content_type", "chapter", "chapter_number", req.ChapterNumber)

	content, err := s.runChapter(ctx, log, req, apiKey)
	if err != nil {
		log.WarnContext(ctx, "Chapter generation failed, using placeholder",
			"state", stateBuildingFallback,
			"error", redact.Error(err))
		s.metrics.IncGeneration("chapter", outcomeFallback)
		log.InfoContext(ctx, "Generation finished", "state", stateDone, "outcome", outcomeFallback)
		return chapterFallback(err), nil
	}

	s.metrics.IncGeneration("chapter", outcomeGenerated)
	log.InfoContext(ctx, "Generation finished", "state", stateDone, "outcome", outcomeGenerated)
	return &domain.ChapterResult{Content: content}, nil
}

func (s *generationServiceImpl) runChapter(
	ctx context.Context,
	log *slog.Logger,
	req domain.ChapterRequest,
	apiKey string,
) (string, error) {
	log.DebugContext(ctx, "Generation state", "state", stateBuildingPrompt)
	prompt, err := generation.BuildChapterPrompt(req)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	log.DebugContext(ctx, "Generation state", "state", stateCallingModel, "prompt_length", len(prompt))
	raw, err := s.model.Complete(ctx, prompt, apiKey, generation.TierQuality)
	if err != nil {
		return "", err
	}

	log.DebugContext(ctx, "Generation state", "state", stateParsing, "raw_length", len(raw))
	content := generation.CleanText(raw)

	log.DebugContext(ctx, "Generation state", "state", stateValidating)
	if n := utf8.RuneCountInString(content); n < minChapterLength {
		return "", fmt.Errorf("%w: chapter text too short (%d characters)", generation.ErrMalformedOutput, n)
	}
	return content, nil
}
