package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/storyforge-api/internal/api/shared"
	"github.com/phrazzld/storyforge-api/internal/export/rtf"
	"github.com/phrazzld/storyforge-api/internal/platform/logger"
)

// ExportHandler serves the RTF export endpoints.
type ExportHandler struct{}

// NewExportHandler creates a new ExportHandler
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportRTF handles POST /api/export-rtf requests
func (h *ExportHandler) ExportRTF(w http.ResponseWriter, r *http.Request) {
	var req ExportRTFRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondBadBody(w, r, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Subtitle = strings.TrimSpace(req.Subtitle)
	if strings.TrimSpace(req.Content) == "" {
		req.Content = ""
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}

	body := rtf.Render(rtf.Document{Title: req.Title, Subtitle: req.Subtitle, Content: req.Content})
	writeRTF(w, r, rtf.Filename(req.Title), body)
}

// ExportChapterRTF handles POST /api/export-chapter-rtf requests
func (h *ExportHandler) ExportChapterRTF(w http.ResponseWriter, r *http.Request) {
	var req ExportChapterRTFRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondBadBody(w, r, err)
		return
	}

	req.ChapterTitle = strings.TrimSpace(req.ChapterTitle)
	req.ChapterSubtitle = strings.TrimSpace(req.ChapterSubtitle)
	if strings.TrimSpace(req.Content) == "" {
		req.Content = ""
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}

	body := rtf.RenderChapter(rtf.Chapter{
		Number:   req.ChapterNumber,
		Title:    req.ChapterTitle,
		Subtitle: req.ChapterSubtitle,
		Content:  req.Content,
	})
	writeRTF(w, r, rtf.ChapterFilename(req.ChapterNumber, req.ChapterTitle), body)
}

func writeRTF(w http.ResponseWriter, r *http.Request, filename, body string) {
	w.Header().Set("Content-Type", "application/rtf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to write RTF response", "error", err)
	}
}
