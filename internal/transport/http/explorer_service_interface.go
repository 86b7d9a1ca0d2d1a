package http

import (
	"context"
	"io"

	"cordscope/internal/analytics"
	"cordscope/internal/services"
)

// ExplorerServiceInterface defines the dataset operations the explorer
// handlers need. Defined here so the handlers can be tested against a
// stub without loading a real CSV.
type ExplorerServiceInterface interface {
	// Bounds returns the year interval and total size of the dataset.
	Bounds(ctx context.Context) (*services.Bounds, error)

	// Papers returns the count and preview rows for a year range.
	Papers(ctx context.Context, from, to int) (*services.PaperPage, error)

	// Summary returns the aggregate views for a year range.
	Summary(ctx context.Context, from, to int) (*analytics.Summary, error)

	// Chart renders the named chart for a year range as PNG into w.
	Chart(ctx context.Context, name string, from, to int, w io.Writer) error
}

// HealthServiceInterface defines the operations the health handler needs.
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) *services.HealthStatus
	Version() *services.VersionInfo
}
