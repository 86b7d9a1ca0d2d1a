package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cordscope/internal/analytics"
)

func testSummary() *analytics.Summary {
	return &analytics.Summary{
		TotalPapers: 3,
		Years: analytics.Describe{
			Count: 3, Mean: 2020, Std: 1, Min: 2019, Q1: 2019.5, Median: 2020, Q3: 2020.5, Max: 2021,
		},
		AbstractWords: analytics.Describe{
			Count: 3, Mean: 150, Std: 80, Min: 60, Q1: 75, Median: 120, Q3: 185, Max: 250,
		},
		ByYear: []analytics.YearCount{
			{Year: 2019, Count: 1},
			{Year: 2020, Count: 1},
			{Year: 2021, Count: 1},
		},
		TopJournals: []analytics.JournalCount{
			{Journal: "Nature", Count: 2},
		},
		TopTitleWords: []analytics.WordCount{
			{Word: "coronavirus", Count: 2},
		},
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "summary.xlsx")

	require.NoError(t, NewExcelWriter(nil).WriteSummary(path, testSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Statistics")
	assert.Contains(t, sheets, "By Year")
	assert.Contains(t, sheets, "Top Journals")
	assert.Contains(t, sheets, "Title Words")
	assert.NotContains(t, sheets, "Sheet1")

	// Spot-check cell contents.
	val, err := f.GetCellValue("By Year", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2019", val)

	val, err = f.GetCellValue("Top Journals", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Nature", val)

	val, err = f.GetCellValue("Statistics", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Statistic", val)
}

func TestWriteSummaryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")

	empty := &analytics.Summary{}
	require.NoError(t, NewExcelWriter(nil).WriteSummary(path, empty))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("By Year")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
