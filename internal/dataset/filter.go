package dataset

// YearBounds returns the minimum and maximum year present in the table.
// ok is false when the table has no records with a year.
func YearBounds(t *Table) (min, max int, ok bool) {
	for _, p := range t.Papers {
		if p.Year == 0 {
			continue
		}
		if !ok {
			min, max, ok = p.Year, p.Year, true
			continue
		}
		if p.Year < min {
			min = p.Year
		}
		if p.Year > max {
			max = p.Year
		}
	}
	return min, max, ok
}

// FilterYearRange returns a new table containing the records with
// lo <= Year <= hi. Filtering a filtered table with the same interval
// returns an equal subset.
func FilterYearRange(t *Table, lo, hi int) *Table {
	filtered := &Table{Columns: t.Columns}
	for _, p := range t.Papers {
		if p.Year >= lo && p.Year <= hi {
			filtered.Papers = append(filtered.Papers, p)
		}
	}
	return filtered
}
