package report

import (
	"sort"
	"time"
)

// ManifestEntry points at one persisted monthly summary.
type ManifestEntry struct {
	Month       string    `json:"month"`
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Manifest indexes all available monthly summaries, newest month first.
type Manifest struct {
	Reports []ManifestEntry `json:"reports"`
}

// Upsert inserts or replaces the entry for month and re-sorts the index
// descending by month key, so the latest month is always Reports[0]
// without a read-back.
func (m *Manifest) Upsert(month, filename string, generatedAt time.Time) {
	entry := ManifestEntry{Month: month, Filename: filename, GeneratedAt: generatedAt}
	replaced := false
	for i := range m.Reports {
		if m.Reports[i].Month == month {
			m.Reports[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		m.Reports = append(m.Reports, entry)
	}

	// Lexicographic order on YYYY-MM keys is chronological order.
	sort.SliceStable(m.Reports, func(i, j int) bool {
		return m.Reports[i].Month > m.Reports[j].Month
	})
}

// Latest returns the newest indexed entry, or nil for an empty manifest.
func (m *Manifest) Latest() *ManifestEntry {
	if m == nil || len(m.Reports) == 0 {
		return nil
	}
	return &m.Reports[0]
}

// PreviousMonth returns the month key of the entry immediately older than
// month, or "" when month is the oldest (or not indexed).
func (m *Manifest) PreviousMonth(month string) string {
	if m == nil {
		return ""
	}
	for i := range m.Reports {
		if m.Reports[i].Month == month && i+1 < len(m.Reports) {
			return m.Reports[i+1].Month
		}
	}
	return ""
}
