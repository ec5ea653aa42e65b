package api

import "github.com/phrazzld/storyforge-api/internal/domain"

// GenerateRequest is the body of POST /api/generate. APIKey is optional when
// the server has its own key configured.
type GenerateRequest struct {
	domain.GenerationRequest
	APIKey string `json:"apiKey,omitempty"`
}

// GenerateChapterRequest is the body of POST /api/generate-chapter.
type GenerateChapterRequest struct {
	domain.ChapterRequest
	APIKey string `json:"apiKey,omitempty"`
}

// TestKeyRequest is the body of POST /api/test-key.
type TestKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// TestKeyResponse is returned when a key works.
type TestKeyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExportRTFRequest is the body of POST /api/export-rtf.
type ExportRTFRequest struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle,omitempty"`
	Content  string `json:"content" validate:"required"`
}

// ExportChapterRTFRequest is the body of POST /api/export-chapter-rtf.
type ExportChapterRTFRequest struct {
	ChapterNumber   int    `json:"chapterNumber" validate:"gte=0"`
	ChapterTitle    string `json:"chapterTitle" validate:"required"`
	ChapterSubtitle string `json:"chapterSubtitle,omitempty"`
	Content         string `json:"content" validate:"required"`
}
