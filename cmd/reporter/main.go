// Command reporter runs the batch analysis: it loads the metadata CSV,
// cleans it, prints the exploration report, and writes charts and
// tabular exports to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cordscope/internal/analytics"
	"cordscope/internal/charts"
	"cordscope/internal/config"
	"cordscope/internal/dataset"
	"cordscope/internal/exporter"
	"cordscope/internal/infrastructure"
)

// yearPreviewRows caps the year table printed to stdout; the full table
// goes into the CSV export.
const yearPreviewRows = 10

func main() {
	file := flag.String("file", "", "metadata CSV path (defaults to data/metadata.csv)")
	plots := flag.String("plots", "", "chart output directory (defaults to plots)")
	reports := flag.String("reports", "", "report output directory (defaults to reports)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.Output = "console"
		cfg.Logging.Format = "text"
	}

	if *file != "" {
		cfg.Paths.MetadataCSV = *file
	}
	if *plots != "" {
		cfg.Paths.PlotsDir = *plots
	}
	if *reports != "" {
		cfg.Paths.ReportsDir = *reports
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("report failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger.Info("loading metadata",
		slog.String("path", cfg.Paths.MetadataCSV))

	raw, err := dataset.Load(ctx, cfg.Paths.MetadataCSV)
	if err != nil {
		return err
	}

	printExploration(raw)

	result := dataset.NewCleaner(logger).Clean(ctx, raw)
	fmt.Printf("\nCleaned: %d rows kept, %d dropped\n", result.RowsAfter, result.Dropped)

	summary := analytics.NewAggregator(logger).Summarize(ctx, result.Table)
	printSummary(summary)

	if err := charts.NewRenderer(logger).SaveAll(ctx, result.Table, cfg.Paths.PlotsDir); err != nil {
		return fmt.Errorf("failed to save charts: %w", err)
	}
	fmt.Printf("\nCharts written to %s\n", cfg.Paths.PlotsDir)

	if err := writeExports(cfg.Paths.ReportsDir, summary, logger); err != nil {
		return err
	}
	fmt.Printf("Reports written to %s\n", cfg.Paths.ReportsDir)

	return nil
}

// printExploration prints the raw table shape, a head sample, and the
// per-column missing value counts.
func printExploration(t *dataset.Table) {
	fmt.Printf("Shape: %d rows x %d columns\n", t.Rows(), t.Cols())

	fmt.Println("\nFirst rows:")
	for i, p := range t.Head(5) {
		fmt.Printf("  %d. %-60.60s  %-25.25s  %s\n", i+1, p.Title, p.Journal, p.PublishTimeRaw)
	}

	fmt.Println("\nMissing values:")
	missing := t.MissingCounts()
	for _, col := range []string{"title", "abstract", "journal", "publish_time"} {
		fmt.Printf("  %-15s %d\n", col, missing[col])
	}
}

func printSummary(s *analytics.Summary) {
	fmt.Printf("\nAbstract word count: mean=%.1f std=%.1f min=%.0f median=%.0f max=%.0f\n",
		s.AbstractWords.Mean, s.AbstractWords.Std, s.AbstractWords.Min,
		s.AbstractWords.Median, s.AbstractWords.Max)

	fmt.Println("\nPublications by year:")
	for i, yc := range s.ByYear {
		if i == yearPreviewRows {
			fmt.Printf("  ... %d more years in year_counts.csv\n", len(s.ByYear)-yearPreviewRows)
			break
		}
		fmt.Printf("  %d  %d\n", yc.Year, yc.Count)
	}

	fmt.Println("\nTop journals:")
	for _, jc := range s.TopJournals {
		fmt.Printf("  %-40.40s %d\n", jc.Journal, jc.Count)
	}

	fmt.Println("\nTop title words:")
	for _, wc := range s.TopTitleWords {
		fmt.Printf("  %-20s %d\n", wc.Word, wc.Count)
	}
}

func writeExports(dir string, summary *analytics.Summary, logger *slog.Logger) error {
	csvWriter := exporter.NewCSVWriter(logger)

	if err := csvWriter.WriteYearCounts(filepath.Join(dir, "year_counts.csv"), summary.ByYear); err != nil {
		return fmt.Errorf("failed to write year counts: %w", err)
	}
	if err := csvWriter.WriteTopJournals(filepath.Join(dir, "top_journals.csv"), summary.TopJournals); err != nil {
		return fmt.Errorf("failed to write top journals: %w", err)
	}
	if err := csvWriter.WriteTitleWords(filepath.Join(dir, "title_words.csv"), summary.TopTitleWords); err != nil {
		return fmt.Errorf("failed to write title words: %w", err)
	}

	if err := exporter.NewExcelWriter(logger).WriteSummary(filepath.Join(dir, "summary.xlsx"), summary); err != nil {
		return fmt.Errorf("failed to write summary workbook: %w", err)
	}

	return nil
}
