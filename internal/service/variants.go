package service

import (
	"fmt"
	"strings"

	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/phrazzld/storyforge-api/internal/generation"
)

// selectionSize is the number of title and subtitle options of an article.
const selectionSize = 3

// variant is the pipeline of one content type. Every supported content type
// has exactly one entry in variants.
type variant struct {
	prompt   func(req domain.GenerationRequest) (string, error)
	parse    func(raw string) (domain.Artifact, error)
	validate func(a domain.Artifact, req domain.GenerationRequest) (domain.Artifact, error)
	fallback func(req domain.GenerationRequest, cause error) domain.Artifact
}

var articleVariant = variant{
	prompt:   generation.BuildArticlePrompt,
	parse:    parseArticle,
	validate: validateArticle,
	fallback: articleFallback,
}

var variants = map[domain.ContentType]variant{
	domain.ContentTypeArticle:    articleVariant,
	domain.ContentTypeShortStory: articleVariant,
	domain.ContentTypeNews:       articleVariant,
	domain.ContentTypeShortNews:  articleVariant,
	domain.ContentTypeNovel: {
		prompt:   generation.BuildNovelOutlinePrompt,
		parse:    parseNovelOutline,
		validate: validateNovelOutline,
		fallback: novelOutlineFallback,
	},
}

func parseArticle(raw string) (domain.Artifact, error) {
	res, err := generation.DecodeJSON[domain.ArticleResult](raw)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func parseNovelOutline(raw string) (domain.Artifact, error) {
	res, err := generation.DecodeJSON[domain.NovelOutlineResult](raw)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// validateArticle requires three titles, three subtitles, at least one tag
// and non-empty content. Surplus options are dropped.
func validateArticle(a domain.Artifact, _ domain.GenerationRequest) (domain.Artifact, error) {
	res, ok := a.(*domain.ArticleResult)
	if !ok || res == nil {
		return nil, fmt.Errorf("%w: expected an article result, got %T", generation.ErrMalformedOutput, a)
	}

	titles := nonBlank(res.TitleSelection)
	if len(titles) < selectionSize {
		return nil, fmt.Errorf("%w: expected %d titles in titleSelection, got %d",
			generation.ErrMalformedOutput, selectionSize, len(titles))
	}
	subtitles := nonBlank(res.SubtitleSelection)
	if len(subtitles) < selectionSize {
		return nil, fmt.Errorf("%w: expected %d subtitles in subtitleSelection, got %d",
			generation.ErrMalformedOutput, selectionSize, len(subtitles))
	}
	tags := nonBlank(res.RefinedTags)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: refinedTags is empty", generation.ErrMalformedOutput)
	}
	content := strings.TrimSpace(res.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", generation.ErrMalformedOutput)
	}

	return &domain.ArticleResult{
		RefinedTags:       tags,
		TitleSelection:    titles[:selectionSize],
		SubtitleSelection: subtitles[:selectionSize],
		Content:           content,
	}, nil
}

// validateNovelOutline requires a title, a synopsis and exactly the requested
// number of fully titled chapters. Chapters are renumbered 1..N in order.
func validateNovelOutline(a domain.Artifact, req domain.GenerationRequest) (domain.Artifact, error) {
	res, ok := a.(*domain.NovelOutlineResult)
	if !ok || res == nil {
		return nil, fmt.Errorf("%w: expected a novel outline, got %T", generation.ErrMalformedOutput, a)
	}

	titles := nonBlank(res.TitleSelection)
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: titleSelection is empty", generation.ErrMalformedOutput)
	}
	synopsis := strings.TrimSpace(res.Synopsis)
	if synopsis == "" {
		return nil, fmt.Errorf("%w: synopsis is empty", generation.ErrMalformedOutput)
	}
	if len(res.Chapters) != req.ChapterCount {
		return nil, fmt.Errorf("%w: expected %d chapters, got %d",
			generation.ErrMalformedOutput, req.ChapterCount, len(res.Chapters))
	}

	chapters := make([]domain.OutlineChapter, len(res.Chapters))
	for i, ch := range res.Chapters {
		title := strings.TrimSpace(ch.Title)
		subtitle := strings.TrimSpace(ch.Subtitle)
		if title == "" || subtitle == "" {
			return nil, fmt.Errorf("%w: chapter %d is missing its title or subtitle",
				generation.ErrMalformedOutput, i+1)
		}
		chapters[i] = domain.OutlineChapter{ChapterNumber: i + 1, Title: title, Subtitle: subtitle}
	}

	return &domain.NovelOutlineResult{
		TitleSelection: titles,
		Synopsis:       synopsis,
		Chapters:       chapters,
	}, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
