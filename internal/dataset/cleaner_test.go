package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublishTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso date", "2020-03-01", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"year month day", "2020 Mar 1", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"year month", "2019 Dec", time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"bare year", "2018", time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", "not-a-date", time.Time{}},
		{"empty", "", time.Time{}},
		{"whitespace only", "   ", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePublishTime(tt.raw))
		})
	}
}

func TestClean(t *testing.T) {
	raw := &Table{
		Columns: []string{"title", "abstract", "journal", "publish_time"},
		Papers: []Paper{
			{Title: "Kept paper", Abstract: "a b c", Journal: "Nature", PublishTimeRaw: "2020-03-01"},
			{Title: "", Abstract: "no title", PublishTimeRaw: "2020-01-01"},
			{Title: "Bad date", Abstract: "x y", PublishTimeRaw: "not-a-date"},
			{Title: "No abstract", PublishTimeRaw: "2021"},
		},
	}

	result := NewCleaner(nil).Clean(context.Background(), raw)

	assert.Equal(t, 4, result.RowsBefore)
	assert.Equal(t, 2, result.RowsAfter)
	assert.Equal(t, result.RowsBefore-result.RowsAfter, result.Dropped)

	// Every retained record has a title and a year.
	for _, p := range result.Table.Papers {
		assert.NotEmpty(t, p.Title)
		assert.NotZero(t, p.Year)
	}

	first := result.Table.Papers[0]
	assert.Equal(t, 2020, first.Year)
	assert.Equal(t, 3, first.AbstractWordCount)

	second := result.Table.Papers[1]
	assert.Equal(t, 2021, second.Year)
	assert.Equal(t, 0, second.AbstractWordCount)
}

func TestCleanDoesNotModifyInput(t *testing.T) {
	raw := &Table{
		Papers: []Paper{
			{Title: "A", Abstract: "one two", PublishTimeRaw: "2020-01-02"},
		},
	}

	NewCleaner(nil).Clean(context.Background(), raw)

	assert.Zero(t, raw.Papers[0].Year)
	assert.Zero(t, raw.Papers[0].AbstractWordCount)
}

func TestCleanDeterministic(t *testing.T) {
	raw := &Table{
		Papers: []Paper{
			{Title: "A", Abstract: "w1 w2 w3", PublishTimeRaw: "2020-05-05"},
			{Title: "B", PublishTimeRaw: "bogus"},
			{Title: "C", Abstract: "x", PublishTimeRaw: "2019"},
		},
	}

	cleaner := NewCleaner(nil)
	first := cleaner.Clean(context.Background(), raw)
	second := cleaner.Clean(context.Background(), raw)

	require.Equal(t, first.Dropped, second.Dropped)
	assert.Equal(t, first.Table.Papers, second.Table.Papers)
}

func TestCleanEmptyTable(t *testing.T) {
	result := NewCleaner(nil).Clean(context.Background(), &Table{})

	assert.Zero(t, result.RowsBefore)
	assert.Zero(t, result.RowsAfter)
	assert.Zero(t, result.Dropped)
	assert.Empty(t, result.Table.Papers)
}

func TestCleanWordCountMatchesFields(t *testing.T) {
	raw := &Table{
		Papers: []Paper{
			{Title: "A", Abstract: "  spaced   out\twords\nhere ", PublishTimeRaw: "2020-01-01"},
		},
	}

	result := NewCleaner(nil).Clean(context.Background(), raw)
	require.Len(t, result.Table.Papers, 1)
	assert.Equal(t, 4, result.Table.Papers[0].AbstractWordCount)
}
