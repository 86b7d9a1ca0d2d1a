package http

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// WebHandler serves the embedded dashboard frontend
type WebHandler struct {
	content fs.FS
	logger  *slog.Logger
}

// NewWebHandler creates a handler over the embedded web content. The
// filesystem root must contain index.html.
func NewWebHandler(content fs.FS, logger *slog.Logger) *WebHandler {
	return &WebHandler{
		content: content,
		logger:  logger.With(slog.String("component", "web_handler")),
	}
}

// Routes returns the frontend routes
func (h *WebHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeIndex)
	r.Handle("/static/*", http.FileServer(http.FS(h.content)))

	return r
}

// ServeIndex serves the dashboard page.
func (h *WebHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.content, "index.html")
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard page missing from embedded content",
			slog.String("error", err.Error()))
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
