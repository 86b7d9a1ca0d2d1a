package charts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cordscope/internal/dataset"
	"cordscope/internal/errors"
)

func testTable() *dataset.Table {
	return &dataset.Table{
		Papers: []dataset.Paper{
			{Title: "Coronavirus transmission", Journal: "Nature", Year: 2020, AbstractWordCount: 120},
			{Title: "Vaccine efficacy", Journal: "The Lancet", Year: 2021, AbstractWordCount: 250},
			{Title: "Genomic analysis", Journal: "Nature", Year: 2020, AbstractWordCount: 90},
			{Title: "Serology study", Journal: "BMJ", Year: 2019, AbstractWordCount: 60},
		},
	}
}

func TestRenderKnownCharts(t *testing.T) {
	renderer := NewRenderer(nil)
	table := testTable()

	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			p, err := renderer.Render(name, table)
			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestRenderUnknownChart(t *testing.T) {
	_, err := NewRenderer(nil).Render("sepal_width", testTable())
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
}

func TestRenderEmptyTable(t *testing.T) {
	renderer := NewRenderer(nil)
	empty := &dataset.Table{}

	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			p, err := renderer.Render(name, empty)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, renderer.WritePNG(p, &buf))
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestWritePNG(t *testing.T) {
	renderer := NewRenderer(nil)

	p, err := renderer.PublicationsByYear(testTable())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.WritePNG(p, &buf))

	// PNG signature
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(nil)

	require.NoError(t, renderer.SaveAll(context.Background(), testTable(), dir))

	for _, name := range Names {
		path := filepath.Join(dir, name+".png")
		info, err := os.Stat(path)
		require.NoError(t, err, "expected %s to exist", path)
		assert.NotZero(t, info.Size())
	}
}
