// Package exporter writes aggregate views to report files: CSV
// frequency tables and an Excel summary workbook.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"cordscope/internal/analytics"
	"cordscope/internal/errors"
)

// CSVWriter provides CSV export functionality for aggregate views.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write CSV header row", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i), err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteYearCounts writes the publications-per-year table.
func (w *CSVWriter) WriteYearCounts(filePath string, counts []analytics.YearCount) error {
	records := make([][]string, 0, len(counts))
	for _, yc := range counts {
		records = append(records, []string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Year", "Publications"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTopJournals writes the top journals table.
func (w *CSVWriter) WriteTopJournals(filePath string, journals []analytics.JournalCount) error {
	records := make([][]string, 0, len(journals))
	for _, jc := range journals {
		records = append(records, []string{jc.Journal, strconv.Itoa(jc.Count)})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Journal", "Papers"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTitleWords writes the most frequent title words table.
func (w *CSVWriter) WriteTitleWords(filePath string, words []analytics.WordCount) error {
	records := make([][]string, 0, len(words))
	for _, wc := range words {
		records = append(records, []string{wc.Word, strconv.Itoa(wc.Count)})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Word", "Occurrences"},
		Records:   records,
		BOMPrefix: true,
	})
}
