package domain

import "strings"

// PreviousChapter is continuity context for chapter generation. Clients send
// the chapters they already hold; the server never stores them.
type PreviousChapter struct {
	ChapterNumber int      `json:"chapterNumber"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	KeyEvents     []string `json:"keyEvents,omitempty"`
}

// ChapterRequest asks for the prose of a single novel chapter.
type ChapterRequest struct {
	ChapterNumber    int               `json:"chapterNumber" validate:"gte=0"`
	ChapterTitle     string            `json:"chapterTitle"`
	ChapterSubtitle  string            `json:"chapterSubtitle"`
	NovelTitle       string            `json:"novelTitle"`
	NovelSynopsis    string            `json:"novelSynopsis"`
	PreviousChapters []PreviousChapter `json:"previousChapters,omitempty"`
	AuthorStyle      string            `json:"authorStyle,omitempty"`
	Language         Language          `json:"language,omitempty"`
}

// Normalize trims text fields and defaults the language to English.
func (r *ChapterRequest) Normalize() {
	r.ChapterTitle = strings.TrimSpace(r.ChapterTitle)
	r.ChapterSubtitle = strings.TrimSpace(r.ChapterSubtitle)
	r.NovelTitle = strings.TrimSpace(r.NovelTitle)
	r.NovelSynopsis = strings.TrimSpace(r.NovelSynopsis)
	r.AuthorStyle = strings.TrimSpace(r.AuthorStyle)
	r.Language = Language(strings.ToLower(strings.TrimSpace(string(r.Language))))
	if !r.Language.IsValid() {
		r.Language = LanguageEnglish
	}
}

// Validate rejects structurally impossible requests. Chapter generation is
// deliberately lenient about empty titles: the prompt copes with them.
func (r ChapterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return translateValidationError(err)
	}
	return nil
}
