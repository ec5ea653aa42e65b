package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/storyforge-api/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// ProbePrompt is the minimal prompt used to check that a credential works.
const ProbePrompt = "Reply with the single word OK."

// previousExcerptLength bounds how much of the latest chapter is quoted back
// to the model for continuity.
const previousExcerptLength = 600

// ArticleFormat holds the per-type parameters of article-like prompts.
type ArticleFormat struct {
	Label    string
	MinWords int
	MaxWords int
	Guidance string
}

var articleFormats = map[domain.ContentType]ArticleFormat{
	domain.ContentTypeArticle: {
		Label:    "article",
		MinWords: 800,
		MaxWords: 1200,
		Guidance: "Open with an engaging introduction, develop the topic in clear sections and close with a conclusion.",
	},
	domain.ContentTypeShortStory: {
		Label:    "short story",
		MinWords: 1500,
		MaxWords: 2500,
		Guidance: "Tell a complete story with a clear beginning, rising tension and a satisfying ending.",
	},
	domain.ContentTypeNews: {
		Label:    "news article",
		MinWords: 500,
		MaxWords: 800,
		Guidance: "Lead with the most important facts and continue in inverted-pyramid order with attributed quotes.",
	},
	domain.ContentTypeShortNews: {
		Label:    "short news brief",
		MinWords: 150,
		MaxWords: 300,
		Guidance: "Deliver only the essential facts in a tight, neutral brief.",
	},
}

// chapterFormat holds the length constraints of chapter prompts.
var chapterFormat = ArticleFormat{Label: "chapter", MinWords: 2000, MaxWords: 3000}

// ArticleFormatFor returns the prompt parameters for an article-like content type.
func ArticleFormatFor(ct domain.ContentType) (ArticleFormat, bool) {
	format, ok := articleFormats[ct]
	return format, ok
}

type articlePromptData struct {
	ArticleFormat
	Topic          string
	AuthorStyle    string
	MainIdea       string
	Tags           []string
	Keywords       []string
	NewspaperStyle string
	Language       string
}

// BuildArticlePrompt builds the prompt for article, shortstory, news and
// shortnews requests. The model is told to answer with one JSON object holding
// refinedTags, titleSelection, subtitleSelection and content.
func BuildArticlePrompt(req domain.GenerationRequest) (string, error) {
	format, ok := articleFormats[req.ContentType]
	if !ok {
		return "", fmt.Errorf("%w: %q has no article prompt", domain.ErrUnsupportedContentType, req.ContentType)
	}

	data := articlePromptData{
		ArticleFormat: format,
		Topic:         req.Topic,
		AuthorStyle:   req.AuthorStyle,
		MainIdea:      req.MainIdea,
		Tags:          req.Tags,
		Keywords:      req.Keywords,
		Language:      req.Language.DisplayName(),
	}
	// Only news formats have a publication voice.
	if req.ContentType == domain.ContentTypeNews || req.ContentType == domain.ContentTypeShortNews {
		data.NewspaperStyle = req.NewspaperStyle
	}

	return render("article.tmpl", data)
}

type novelPromptData struct {
	Topic        string
	AuthorStyle  string
	MainIdea     string
	Tags         []string
	Keywords     []string
	ChapterCount int
	Language     string
}

// BuildNovelOutlinePrompt builds the prompt for a novel outline with exactly
// req.ChapterCount chapters.
func BuildNovelOutlinePrompt(req domain.GenerationRequest) (string, error) {
	if req.ChapterCount < 1 {
		return "", fmt.Errorf("%w: chapterCount must be at least 1 for novels", domain.ErrValidation)
	}

	return render("novel.tmpl", novelPromptData{
		Topic:        req.Topic,
		AuthorStyle:  req.AuthorStyle,
		MainIdea:     req.MainIdea,
		Tags:         req.Tags,
		Keywords:     req.Keywords,
		ChapterCount: req.ChapterCount,
		Language:     req.Language.DisplayName(),
	})
}

type chapterPromptData struct {
	ChapterNumber   int
	ChapterTitle    string
	ChapterSubtitle string
	NovelTitle      string
	NovelSynopsis   string
	AuthorStyle     string
	Previous        []domain.PreviousChapter
	LastExcerpt     string
	Language        string
	MinWords        int
	MaxWords        int
}

// BuildChapterPrompt builds the free-text prompt for one chapter. When previous
// chapters are supplied, their titles and key events plus the closing excerpt
// of the latest one are included for continuity.
func BuildChapterPrompt(req domain.ChapterRequest) (string, error) {
	data := chapterPromptData{
		ChapterNumber:   req.ChapterNumber,
		ChapterTitle:    req.ChapterTitle,
		ChapterSubtitle: req.ChapterSubtitle,
		NovelTitle:      req.NovelTitle,
		NovelSynopsis:   req.NovelSynopsis,
		AuthorStyle:     req.AuthorStyle,
		Previous:        req.PreviousChapters,
		Language:        req.Language.DisplayName(),
		MinWords:        chapterFormat.MinWords,
		MaxWords:        chapterFormat.MaxWords,
	}
	if n := len(req.PreviousChapters); n > 0 {
		data.LastExcerpt = tail(strings.TrimSpace(req.PreviousChapters[n-1].Content), previousExcerptLength)
	}

	return render("chapter.tmpl", data)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return "..." + string(runes[len(runes)-n:])
}
