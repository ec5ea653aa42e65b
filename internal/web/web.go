package web

import (
	"embed"
	"net/http"

	"github.com/phrazzld/storyforge-api/internal/platform/logger"
)

//go:embed static/*.html
var static embed.FS

// Document names.
const (
	IndexDocument    = "static/index.html"
	SettingsDocument = "static/settings.html"
)

// Handler serves the embedded UI documents.
type Handler struct {
	index    []byte
	settings []byte
}

// NewHandler loads the embedded documents.
func NewHandler() (*Handler, error) {
	index, err := static.ReadFile(IndexDocument)
	if err != nil {
		return nil, err
	}
	settings, err := static.ReadFile(SettingsDocument)
	if err != nil {
		return nil, err
	}
	return &Handler{index: index, settings: settings}, nil
}

// Index handles GET / and GET /index.html
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	serveHTML(w, r, h.index)
}

// Settings handles GET /settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	serveHTML(w, r, h.settings)
}

func serveHTML(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to write UI document", "error", err)
	}
}
