// Package services sits between the HTTP transport and the dataset
// pipeline: it owns the cached load, applies the year-range filter, and
// produces the views the handlers render.
package services

import (
	"context"
	"io"
	"log/slog"

	"cordscope/internal/analytics"
	"cordscope/internal/charts"
	"cordscope/internal/config"
	"cordscope/internal/dataset"
	"cordscope/internal/errors"
)

// previewRows is the number of records shown in the dashboard preview.
const previewRows = 10

// ExplorerService provides the filtered views behind the dashboard.
type ExplorerService struct {
	config     *config.Config
	cache      *dataset.Cache
	aggregator *analytics.Aggregator
	renderer   *charts.Renderer
	logger     *slog.Logger
}

// NewExplorerService creates a new explorer service.
func NewExplorerService(cfg *config.Config, logger *slog.Logger) *ExplorerService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("explorer service initialized",
		slog.String("metadata_csv", cfg.Paths.MetadataCSV))

	return &ExplorerService{
		config:     cfg,
		cache:      dataset.NewCache(logger),
		aggregator: analytics.NewAggregator(logger),
		renderer:   charts.NewRenderer(logger),
		logger:     logger,
	}
}

// Bounds describes the year interval available to the filter.
type Bounds struct {
	MinYear     int `json:"min_year"`
	MaxYear     int `json:"max_year"`
	TotalPapers int `json:"total_papers"`
}

// PaperPage is the filtered view the dashboard preview renders.
type PaperPage struct {
	From    int             `json:"from"`
	To      int             `json:"to"`
	Count   int             `json:"count"`
	Preview []dataset.Paper `json:"preview"`
}

// Cleaned returns the cleaned table, loading it on first use.
func (s *ExplorerService) Cleaned(ctx context.Context) (*dataset.CleanResult, error) {
	return s.cache.Get(ctx, s.config.Paths.MetadataCSV)
}

// Bounds returns the min/max year of the cleaned table.
func (s *ExplorerService) Bounds(ctx context.Context) (*Bounds, error) {
	result, err := s.Cleaned(ctx)
	if err != nil {
		return nil, err
	}

	min, max, ok := dataset.YearBounds(result.Table)
	if !ok {
		return nil, errors.NewNotFoundError("publication years in dataset")
	}

	return &Bounds{MinYear: min, MaxYear: max, TotalPapers: result.RowsAfter}, nil
}

// Papers returns the record count and preview rows for a year range.
func (s *ExplorerService) Papers(ctx context.Context, from, to int) (*PaperPage, error) {
	filtered, err := s.filtered(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	return &PaperPage{
		From:    from,
		To:      to,
		Count:   filtered.Rows(),
		Preview: filtered.Head(previewRows),
	}, nil
}

// Summary returns the aggregate views for a year range.
func (s *ExplorerService) Summary(ctx context.Context, from, to int) (*analytics.Summary, error) {
	filtered, err := s.filtered(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	return s.aggregator.Summarize(ctx, filtered), nil
}

// Chart renders the named chart for a year range as PNG into w.
func (s *ExplorerService) Chart(ctx context.Context, name string, from, to int, w io.Writer) error {
	filtered, err := s.filtered(ctx, &from, &to)
	if err != nil {
		return err
	}

	p, err := s.renderer.Render(name, filtered)
	if err != nil {
		return err
	}

	return s.renderer.WritePNG(p, w)
}

// filtered loads the cleaned table and applies the year range. Zero
// bounds are widened to the dataset bounds, so callers can pass 0 to
// mean "unbounded" on either side.
func (s *ExplorerService) filtered(ctx context.Context, from, to *int) (*dataset.Table, error) {
	result, err := s.Cleaned(ctx)
	if err != nil {
		return nil, err
	}

	min, max, ok := dataset.YearBounds(result.Table)
	if !ok {
		// Nothing survived cleaning; an empty table filters to itself.
		return result.Table, nil
	}

	if *from == 0 {
		*from = min
	}
	if *to == 0 {
		*to = max
	}

	if *from > *to {
		return nil, errors.NewAppValidationError("year range lower bound exceeds upper bound")
	}

	return dataset.FilterYearRange(result.Table, *from, *to), nil
}
