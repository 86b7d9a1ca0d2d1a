package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cordscope/internal/analytics"
	"cordscope/internal/errors"
)

// Sheet names of the summary workbook.
const (
	sheetStatistics  = "Statistics"
	sheetByYear      = "By Year"
	sheetTopJournals = "Top Journals"
	sheetTitleWords  = "Title Words"
)

// ExcelWriter writes the aggregate summary as a multi-sheet workbook.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger.With(slog.String("component", "excel_exporter"))}
}

// WriteSummary writes the full summary to an xlsx file.
func (w *ExcelWriter) WriteSummary(filePath string, summary *analytics.Summary) error {
	w.logger.Info("writing summary workbook", slog.String("path", filePath))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeStatistics(f, summary); err != nil {
		return err
	}
	if err := w.writeByYear(f, summary.ByYear); err != nil {
		return err
	}
	if err := w.writeTopJournals(f, summary.TopJournals); err != nil {
		return err
	}
	if err := w.writeTitleWords(f, summary.TopTitleWords); err != nil {
		return err
	}

	// Drop the default sheet created by excelize.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filePath); err != nil {
		return errors.NewStorageError("failed to save summary workbook", err)
	}

	return nil
}

// writeStatistics fills the descriptive statistics sheet.
func (w *ExcelWriter) writeStatistics(f *excelize.File, summary *analytics.Summary) error {
	if _, err := f.NewSheet(sheetStatistics); err != nil {
		return errors.NewStorageError("failed to create statistics sheet", err)
	}

	rows := [][]interface{}{
		{"Statistic", "Year", "Abstract Word Count"},
		{"count", summary.Years.Count, summary.AbstractWords.Count},
		{"mean", summary.Years.Mean, summary.AbstractWords.Mean},
		{"std", summary.Years.Std, summary.AbstractWords.Std},
		{"min", summary.Years.Min, summary.AbstractWords.Min},
		{"25%", summary.Years.Q1, summary.AbstractWords.Q1},
		{"50%", summary.Years.Median, summary.AbstractWords.Median},
		{"75%", summary.Years.Q3, summary.AbstractWords.Q3},
		{"max", summary.Years.Max, summary.AbstractWords.Max},
	}

	return w.writeRows(f, sheetStatistics, rows)
}

// writeByYear fills the publications-per-year sheet.
func (w *ExcelWriter) writeByYear(f *excelize.File, counts []analytics.YearCount) error {
	if _, err := f.NewSheet(sheetByYear); err != nil {
		return errors.NewStorageError("failed to create by-year sheet", err)
	}

	rows := [][]interface{}{{"Year", "Publications"}}
	for _, yc := range counts {
		rows = append(rows, []interface{}{yc.Year, yc.Count})
	}

	return w.writeRows(f, sheetByYear, rows)
}

// writeTopJournals fills the top journals sheet.
func (w *ExcelWriter) writeTopJournals(f *excelize.File, journals []analytics.JournalCount) error {
	if _, err := f.NewSheet(sheetTopJournals); err != nil {
		return errors.NewStorageError("failed to create journals sheet", err)
	}

	rows := [][]interface{}{{"Journal", "Papers"}}
	for _, jc := range journals {
		rows = append(rows, []interface{}{jc.Journal, jc.Count})
	}

	return w.writeRows(f, sheetTopJournals, rows)
}

// writeTitleWords fills the title words sheet.
func (w *ExcelWriter) writeTitleWords(f *excelize.File, words []analytics.WordCount) error {
	if _, err := f.NewSheet(sheetTitleWords); err != nil {
		return errors.NewStorageError("failed to create title words sheet", err)
	}

	rows := [][]interface{}{{"Word", "Occurrences"}}
	for _, wc := range words {
		rows = append(rows, []interface{}{wc.Word, wc.Count})
	}

	return w.writeRows(f, sheetTitleWords, rows)
}

// writeRows writes rows starting at A1 of the given sheet.
func (w *ExcelWriter) writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewStorageError("failed to compute cell coordinates", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write row %d of sheet %s", i+1, sheet), err)
		}
	}
	return nil
}
