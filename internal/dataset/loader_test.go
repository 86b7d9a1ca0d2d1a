package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cordscope/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleCSV = `cord_uid,source_x,title,doi,abstract,publish_time,journal
a1,PMC,Viral transmission dynamics,10.1/x,a b c,2020-03-01,Nature
a2,WHO,Vaccine efficacy study,10.1/y,one two three four,2021-06-15,The Lancet
a3,PMC,,10.1/z,no title here,2020-01-01,BMJ
a4,PMC,Untimed paper,10.1/w,some abstract,not-a-date,Nature
`

func TestLoad(t *testing.T) {
	path := writeCSV(t, sampleCSV)

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, table.Rows())
	assert.Equal(t, 7, table.Cols())

	first := table.Papers[0]
	assert.Equal(t, "Viral transmission dynamics", first.Title)
	assert.Equal(t, "a b c", first.Abstract)
	assert.Equal(t, "Nature", first.Journal)
	assert.Equal(t, "PMC", first.Source)
	assert.Equal(t, "10.1/x", first.DOI)
	assert.Equal(t, "2020-03-01", first.PublishTimeRaw)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
}

func TestLoadMissingExpectedColumn(t *testing.T) {
	path := writeCSV(t, "title,abstract,journal\nA,B,C\n")

	_, err := Load(context.Background(), path)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeParsing, appErr.Type)
	assert.Contains(t, err.Error(), "publish_time")
}

func TestLoadExtraColumnsIgnored(t *testing.T) {
	path := writeCSV(t, "title,abstract,journal,publish_time,who_covidence,license\nA,B,C,2020-01-01,x,cc-by\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Rows())
	assert.Equal(t, "A", table.Papers[0].Title)
}

func TestLoadRaggedRows(t *testing.T) {
	// Short row: missing trailing cells are treated as empty.
	path := writeCSV(t, "title,abstract,journal,publish_time\nA,some words\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Rows())
	assert.Equal(t, "A", table.Papers[0].Title)
	assert.Empty(t, table.Papers[0].Journal)
	assert.Empty(t, table.Papers[0].PublishTimeRaw)
}

func TestLoadHeaderCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "Title,Abstract,Journal,Publish_Time\nA,B,C,2020-01-01\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows())
}

func TestMissingCounts(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	counts := table.MissingCounts()
	assert.Equal(t, 1, counts["title"])
	assert.Equal(t, 0, counts["abstract"])
	assert.Equal(t, 0, counts["journal"])
	assert.Equal(t, 0, counts["publish_time"])
}

func TestHead(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, table.Head(2), 2)
	assert.Len(t, table.Head(10), 4)
}
