// Package dataset loads and cleans CORD-19 research-paper metadata.
//
// The pipeline is load → clean → filter: Load reads the raw CSV into an
// in-memory table, Cleaner derives the publication year and abstract word
// count and drops unusable rows, and FilterYearRange subsets a cleaned
// table by publication year. Tables are treated as immutable once cleaned,
// so concurrent readers need no locking.
package dataset

import "time"

// Paper represents one row of the metadata CSV.
type Paper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	Journal  string `json:"journal,omitempty"`
	Source   string `json:"source,omitempty"`
	DOI      string `json:"doi,omitempty"`

	// PublishTimeRaw is the publish_time cell as read from the CSV.
	PublishTimeRaw string `json:"-"`

	// PublishTime is set by the cleaner; zero when the raw value was
	// unparseable or absent.
	PublishTime time.Time `json:"publish_time,omitempty"`

	// Year is the calendar year of PublishTime; 0 means absent.
	Year int `json:"year,omitempty"`

	// AbstractWordCount is the whitespace-token count of Abstract.
	// Always defined after cleaning, 0 for an absent abstract.
	AbstractWordCount int `json:"abstract_word_count"`
}

// Table holds the in-memory paper table together with the original CSV
// header, which is kept for the explore output.
type Table struct {
	Papers  []Paper
	Columns []string
}

// Rows returns the number of records in the table.
func (t *Table) Rows() int {
	return len(t.Papers)
}

// Cols returns the number of columns in the source CSV.
func (t *Table) Cols() int {
	return len(t.Columns)
}

// MissingCounts reports, per named field, how many records have an empty
// value. It mirrors the per-column null counts of the explore step.
func (t *Table) MissingCounts() map[string]int {
	counts := map[string]int{
		"title":        0,
		"abstract":     0,
		"journal":      0,
		"publish_time": 0,
	}

	for _, p := range t.Papers {
		if p.Title == "" {
			counts["title"]++
		}
		if p.Abstract == "" {
			counts["abstract"]++
		}
		if p.Journal == "" {
			counts["journal"]++
		}
		if p.PublishTimeRaw == "" && p.PublishTime.IsZero() {
			counts["publish_time"]++
		}
	}

	return counts
}

// Head returns the first n records, or all of them if fewer exist.
func (t *Table) Head(n int) []Paper {
	if n > len(t.Papers) {
		n = len(t.Papers)
	}
	return t.Papers[:n]
}
