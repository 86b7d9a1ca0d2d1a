package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cordscope/internal/errors"
)

// expectedColumns are the CSV columns the pipeline depends on. Their
// absence is a hard failure; any other columns are carried along but
// otherwise ignored.
var expectedColumns = []string{"title", "abstract", "journal", "publish_time"}

// optionalColumns are picked up when present but never required.
var optionalColumns = []string{"source_x", "doi"}

// Load reads a metadata CSV file into an in-memory table.
// The file must contain the expected columns (title, abstract, journal,
// publish_time); extra columns are tolerated. Ragged rows are accepted,
// with missing trailing cells treated as empty.
func Load(ctx context.Context, path string) (*Table, error) {
	logger := slog.Default().With(slog.String("component", "loader"))

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("metadata file %s", path))
		}
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // metadata.csv has ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read CSV header from %s", path), err)
	}

	columnIndex, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: header}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("failed to parse CSV row in %s", path), err)
		}

		cell := func(name string) string {
			idx, ok := columnIndex[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		table.Papers = append(table.Papers, Paper{
			Title:          cell("title"),
			Abstract:       cell("abstract"),
			Journal:        cell("journal"),
			Source:         cell("source_x"),
			DOI:            cell("doi"),
			PublishTimeRaw: cell("publish_time"),
		})
	}

	logger.InfoContext(ctx, "data loaded",
		slog.String("path", path),
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Cols()))

	return table, nil
}

// mapColumns maps expected column names to their header positions.
// Matching is case-insensitive on trimmed header names.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range expectedColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("CSV is missing expected columns: %s", strings.Join(missing, ", ")), nil)
	}

	columnIndex := make(map[string]int, len(expectedColumns)+len(optionalColumns))
	for _, name := range expectedColumns {
		columnIndex[name] = index[name]
	}
	for _, name := range optionalColumns {
		if idx, ok := index[name]; ok {
			columnIndex[name] = idx
		}
	}

	return columnIndex, nil
}
