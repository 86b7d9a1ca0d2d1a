package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearsTable(years ...int) *Table {
	t := &Table{}
	for _, y := range years {
		t.Papers = append(t.Papers, Paper{Title: "p", Year: y})
	}
	return t
}

func TestYearBounds(t *testing.T) {
	tests := []struct {
		name    string
		years   []int
		wantLo  int
		wantHi  int
		wantOK  bool
	}{
		{"normal spread", []int{2020, 2018, 2021, 2019}, 2018, 2021, true},
		{"single year", []int{2020}, 2020, 2020, true},
		{"absent years skipped", []int{0, 2019, 0, 2021}, 2019, 2021, true},
		{"empty table", nil, 0, 0, false},
		{"only absent years", []int{0, 0}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := YearBounds(yearsTable(tt.years...))
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantLo, lo)
				assert.Equal(t, tt.wantHi, hi)
			}
		})
	}
}

func TestFilterYearRange(t *testing.T) {
	table := yearsTable(2018, 2019, 2020, 2021, 2022)

	filtered := FilterYearRange(table, 2019, 2021)
	require.Equal(t, 3, filtered.Rows())
	for _, p := range filtered.Papers {
		assert.GreaterOrEqual(t, p.Year, 2019)
		assert.LessOrEqual(t, p.Year, 2021)
	}
}

func TestFilterYearRangeIdempotent(t *testing.T) {
	table := yearsTable(2018, 2019, 2020, 2021, 2022)

	once := FilterYearRange(table, 2019, 2021)
	twice := FilterYearRange(once, 2019, 2021)

	assert.Equal(t, once.Papers, twice.Papers)
}

func TestFilterYearRangeEmptyResult(t *testing.T) {
	table := yearsTable(2018, 2019)

	filtered := FilterYearRange(table, 2025, 2030)
	assert.Zero(t, filtered.Rows())
	assert.NotNil(t, filtered)
}

func TestFilterYearRangeInclusiveBounds(t *testing.T) {
	table := yearsTable(2019, 2020, 2021)

	filtered := FilterYearRange(table, 2019, 2021)
	assert.Equal(t, 3, filtered.Rows())

	filtered = FilterYearRange(table, 2020, 2020)
	require.Equal(t, 1, filtered.Rows())
	assert.Equal(t, 2020, filtered.Papers[0].Year)
}
