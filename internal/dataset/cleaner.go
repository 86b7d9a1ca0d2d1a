package dataset

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// publishTimeFormats are the date layouts observed in CORD-19 metadata,
// tried in order. Anything that matches none of them is treated as absent.
var publishTimeFormats = []string{
	"2006-01-02",
	"2006 Jan 2",
	"2006 Jan",
	"2006",
}

// CleanResult reports what cleaning did to a table.
type CleanResult struct {
	Table      *Table
	RowsBefore int
	RowsAfter  int
	Dropped    int
}

// Cleaner transforms a raw loaded table into the cleaned form the
// aggregator and charts operate on.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "cleaner"))}
}

// Clean parses publish_time into a date, derives the year and abstract
// word count, and drops every record missing a title or a year. The input
// table is not modified. Deterministic: the same input always produces
// the same output.
func (c *Cleaner) Clean(ctx context.Context, raw *Table) *CleanResult {
	cleaned := &Table{
		Columns: raw.Columns,
		Papers:  make([]Paper, 0, len(raw.Papers)),
	}

	for _, p := range raw.Papers {
		p.PublishTime = parsePublishTime(p.PublishTimeRaw)
		if !p.PublishTime.IsZero() {
			p.Year = p.PublishTime.Year()
		}
		p.AbstractWordCount = len(strings.Fields(p.Abstract))

		if p.Title == "" || p.Year == 0 {
			continue
		}
		cleaned.Papers = append(cleaned.Papers, p)
	}

	result := &CleanResult{
		Table:      cleaned,
		RowsBefore: raw.Rows(),
		RowsAfter:  cleaned.Rows(),
		Dropped:    raw.Rows() - cleaned.Rows(),
	}

	c.logger.InfoContext(ctx, "dropped rows missing title or year",
		slog.Int("rows_before", result.RowsBefore),
		slog.Int("rows_after", result.RowsAfter),
		slog.Int("dropped", result.Dropped))

	return result
}

// parsePublishTime parses a raw publish_time value, returning the zero
// time when the value is empty or matches no known layout.
func parsePublishTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range publishTimeFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return time.Time{}
}
