// Package analytics derives read-only summary views from a cleaned
// paper table: descriptive statistics, year and journal frequencies,
// and title word counts. Views are computed on demand and never written
// back onto the records.
package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"cordscope/internal/dataset"
)

// Describe holds descriptive statistics for a numeric column.
type Describe struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// YearCount is the number of publications in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// JournalCount is the number of papers published by one journal.
type JournalCount struct {
	Journal string `json:"journal"`
	Count   int    `json:"count"`
}

// WordCount is the frequency of one title word.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Summary bundles every aggregate view over one table.
type Summary struct {
	TotalPapers   int            `json:"total_papers"`
	Years         Describe       `json:"years"`
	AbstractWords Describe       `json:"abstract_words"`
	ByYear        []YearCount    `json:"by_year"`
	TopJournals   []JournalCount `json:"top_journals"`
	TopTitleWords []WordCount    `json:"top_title_words"`
}

// topN is the cutoff shared by the journal and title-word rankings.
const topN = 10

// minTitleWordLen excludes short filler words from the title ranking.
const minTitleWordLen = 6

// Aggregator computes summary views over cleaned tables.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to
// slog.Default.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("component", "aggregator"))}
}

// Summarize computes the full set of aggregate views for a table.
func (a *Aggregator) Summarize(ctx context.Context, t *dataset.Table) *Summary {
	summary := &Summary{
		TotalPapers:   t.Rows(),
		Years:         describeYears(t),
		AbstractWords: describeAbstractWords(t),
		ByYear:        CountByYear(t),
		TopJournals:   TopJournals(t, topN),
		TopTitleWords: TopTitleWords(t, topN),
	}

	a.logger.DebugContext(ctx, "summary computed",
		slog.Int("papers", summary.TotalPapers),
		slog.Int("years", len(summary.ByYear)),
		slog.Int("journals", len(summary.TopJournals)))

	return summary
}

// CountByYear returns the publication count per year, ascending by year.
// Every year present in the table appears exactly once.
func CountByYear(t *dataset.Table) []YearCount {
	counts := make(map[int]int)
	for _, p := range t.Papers {
		if p.Year != 0 {
			counts[p.Year]++
		}
	}

	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)

	result := make([]YearCount, 0, len(years))
	for _, year := range years {
		result = append(result, YearCount{Year: year, Count: counts[year]})
	}
	return result
}

// TopJournals returns the n journals with the most papers, descending by
// count. Ties keep first-encountered order. Records without a journal
// are excluded from the ranking. The result never exceeds n entries.
func TopJournals(t *dataset.Table, n int) []JournalCount {
	counts := make(map[string]int)
	var order []string

	for _, p := range t.Papers {
		journal := strings.TrimSpace(p.Journal)
		if journal == "" {
			continue
		}
		if _, seen := counts[journal]; !seen {
			order = append(order, journal)
		}
		counts[journal]++
	}

	ranked := make([]JournalCount, 0, len(order))
	for _, journal := range order {
		ranked = append(ranked, JournalCount{Journal: journal, Count: counts[journal]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopTitleWords returns the n most frequent lower-cased whitespace tokens
// across all titles, restricted to tokens longer than five characters.
// Ties keep first-encountered order.
func TopTitleWords(t *dataset.Table, n int) []WordCount {
	counts := make(map[string]int)
	var order []string

	for _, p := range t.Papers {
		for _, word := range strings.Fields(strings.ToLower(p.Title)) {
			if len(word) < minTitleWordLen {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	ranked := make([]WordCount, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, WordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// describeYears computes descriptive statistics over the year column.
func describeYears(t *dataset.Table) Describe {
	values := make([]float64, 0, t.Rows())
	for _, p := range t.Papers {
		if p.Year != 0 {
			values = append(values, float64(p.Year))
		}
	}
	return describe(values)
}

// describeAbstractWords computes descriptive statistics over the abstract
// word count column.
func describeAbstractWords(t *dataset.Table) Describe {
	values := make([]float64, 0, t.Rows())
	for _, p := range t.Papers {
		values = append(values, float64(p.AbstractWordCount))
	}
	return describe(values)
}

// describe computes count, mean, sample standard deviation, min, max and
// quartiles (linear interpolation) over a slice of values.
func describe(values []float64) Describe {
	d := Describe{Count: len(values)}
	if len(values) == 0 {
		return d
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	d.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			diff := v - d.Mean
			sq += diff * diff
		}
		d.Std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q1 = quantile(sorted, 0.25)
	d.Median = quantile(sorted, 0.5)
	d.Q3 = quantile(sorted, 0.75)

	return d
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between adjacent ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
