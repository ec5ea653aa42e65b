package service

import (
	"fmt"
	"strings"

	"github.com/phrazzld/storyforge-api/internal/domain"
	"github.com/phrazzld/storyforge-api/internal/generation"
	"github.com/phrazzld/storyforge-api/internal/redact"
)

// Fallback artifacts are built only from the request and the failure, so the
// same inputs always produce the same artifact.

func articleFallback(req domain.GenerationRequest, cause error) domain.Artifact {
	label := "article"
	if format, ok := generation.ArticleFormatFor(req.ContentType); ok {
		label = format.Label
	}

	tags := append([]string(nil), req.Tags...)
	if len(tags) == 0 {
		tags = []string{req.Topic}
	}

	var content strings.Builder
	fmt.Fprintf(&content, "# %s\n\n", req.Topic)
	fmt.Fprintf(&content, "This %s about %s, written in the style of %s, could not be generated.\n\n",
		label, req.Topic, req.AuthorStyle)
	fmt.Fprintf(&content, "Error: %s\n\n", failureMessage(cause))
	content.WriteString("Please try again in a moment, or check your API key on the settings page.")

	return &domain.ArticleResult{
		RefinedTags: tags,
		TitleSelection: []string{
			req.Topic,
			"Understanding " + req.Topic,
			req.Topic + " in the Style of " + req.AuthorStyle,
		},
		SubtitleSelection: []string{
			"A " + label + " about " + req.Topic,
			"Written in the style of " + req.AuthorStyle,
			"Exploring " + strings.Join(tags, ", "),
		},
		Content: content.String(),
	}
}

func novelOutlineFallback(req domain.GenerationRequest, cause error) domain.Artifact {
	count := req.ChapterCount
	if count < 1 {
		count = 1
	}

	chapters := make([]domain.OutlineChapter, count)
	for i := range chapters {
		chapters[i] = domain.OutlineChapter{
			ChapterNumber: i + 1,
			Title:         fmt.Sprintf("Chapter %d", i+1),
			Subtitle:      fmt.Sprintf("Part %d of %d of a story about %s", i+1, count, req.Topic),
		}
	}

	return &domain.NovelOutlineResult{
		TitleSelection: []string{
			req.Topic,
			"Tales of " + req.Topic,
			req.Topic + ": A Novel",
		},
		Synopsis: fmt.Sprintf(
			"A novel about %s in the style of %s. The outline could not be generated: %s",
			req.Topic, req.AuthorStyle, failureMessage(cause),
		),
		Chapters: chapters,
	}
}

// chapterPlaceholder is the fixed narrative returned when a chapter cannot be
// generated.
const chapterPlaceholder = `The morning came quietly, as if the world itself were holding its breath.

Nothing in the small room had changed since the night before: the same worn chair by the window, the same pile of letters waiting on the desk, the same thin line of light creeping across the floor. And yet everything felt different, heavier with the weight of what had happened and what was still to come.

There would be time to understand it all. For now there was only the next step, and the one after that, and the slow certainty that the story was not yet finished.`

func chapterFallback(cause error) *domain.ChapterResult {
	return &domain.ChapterResult{
		Content: chapterPlaceholder +
			"\n\n[Note: this chapter could not be generated (" + failureMessage(cause) + "). Please try again.]",
	}
}

func failureMessage(cause error) string {
	if cause == nil {
		return "unknown error"
	}
	return redact.Error(cause)
}
