package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "cordscope/internal/errors"
)

// validate is shared across handlers; validator caches struct metadata.
var validate = validator.New()

// yearRangeQuery carries the from/to filter common to every explorer
// endpoint. Zero means unbounded on that side.
type yearRangeQuery struct {
	From int `validate:"gte=0,lte=9999"`
	To   int `validate:"gte=0,lte=9999"`
}

// ExplorerHandler handles dataset exploration HTTP requests
type ExplorerHandler struct {
	service      ExplorerServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(service ExplorerServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExplorerHandler {
	return &ExplorerHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "explorer_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the explorer routes
func (h *ExplorerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/papers", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", h.GetPapers)
		r.Get("/bounds", h.GetBounds)
	})

	r.With(render.SetContentType(render.ContentTypeJSON)).
		Get("/summary", h.GetSummary)

	// PNG responses; content type is set per request.
	r.Get("/charts/{name}.png", h.GetChart)

	return r
}

// parseYearRange reads and validates the from/to query parameters.
func (h *ExplorerHandler) parseYearRange(r *http.Request) (*yearRangeQuery, *apierrors.APIError) {
	q := &yearRangeQuery{}

	for param, dst := range map[string]*int{"from": &q.From, "to": &q.To} {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apierrors.ErrValidation(param, fmt.Sprintf("must be a year, got %q", raw))
		}
		*dst = v
	}

	if err := validate.Struct(q); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, apierrors.ErrValidation(fieldErrs[0].Field(), "year out of range")
		}
		return nil, apierrors.ErrValidation("year", "year out of range")
	}

	return q, nil
}

// GetBounds handles GET /api/papers/bounds
func (h *ExplorerHandler) GetBounds(w http.ResponseWriter, r *http.Request) {
	bounds, err := h.service.Bounds(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, bounds)
}

// GetPapers handles GET /api/papers?from=YYYY&to=YYYY
func (h *ExplorerHandler) GetPapers(w http.ResponseWriter, r *http.Request) {
	q, apiErr := h.parseYearRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	page, err := h.service.Papers(r.Context(), q.From, q.To)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, page)
}

// GetSummary handles GET /api/summary?from=YYYY&to=YYYY
func (h *ExplorerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q, apiErr := h.parseYearRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.Summary(r.Context(), q.From, q.To)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// GetChart handles GET /api/charts/{name}.png?from=YYYY&to=YYYY
func (h *ExplorerHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	q, apiErr := h.parseYearRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	// Render into a buffer first so a failed render can still produce
	// a JSON error response instead of a truncated image.
	var buf bytes.Buffer
	if err := h.service.Chart(r.Context(), name, q.From, q.To, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to stream chart",
			slog.String("chart", name),
			slog.String("error", err.Error()))
	}
}
