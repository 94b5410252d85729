// Package ranking computes cross-site rankings, historical series and
// aggregate scores from already-loaded monthly summaries. Everything in
// this package is pure and side-effect free.
package ranking

import (
	"sort"

	"github.com/govscope/govscope/pkg/report"
)

// Metric selects one of the four category scores.
type Metric string

const (
	MetricPerformance   Metric = report.CategoryPerformance
	MetricAccessibility Metric = report.CategoryAccessibility
	MetricBestPractices Metric = report.CategoryBestPractices
	MetricSEO           Metric = report.CategorySEO
)

// Valid reports whether m names a tracked category.
func (m Metric) Valid() bool {
	switch m {
	case MetricPerformance, MetricAccessibility, MetricBestPractices, MetricSEO:
		return true
	}
	return false
}

// score returns the selected metric of r. ok is false for an unknown
// selector, in which case the comparator expresses no preference instead
// of coercing the value to zero.
func (m Metric) score(r *report.SiteReport) (int, bool) {
	switch m {
	case MetricPerformance:
		return r.Scores.Performance, true
	case MetricAccessibility:
		return r.Scores.Accessibility, true
	case MetricBestPractices:
		return r.Scores.BestPractices, true
	case MetricSEO:
		return r.Scores.SEO, true
	}
	return 0, false
}

// Entry is one ranked site. PrevRank and Delta are nil when the site has
// no entry in the previous period.
type Entry struct {
	TLD      string `json:"tld"`
	Name     string `json:"name"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"`
	PrevRank *int   `json:"prevRank,omitempty"`
	Delta    *int   `json:"delta,omitempty"`
}

// Table is a total ordering of one month's sites by one metric.
type Table struct {
	Metric  Metric  `json:"metric"`
	Entries []Entry `json:"entries"`
}

// Rank orders current's sites descending by metric and assigns dense
// 1-based ranks. When previous is supplied it is ranked the same way and
// each site's delta is prevRank - rank, so a positive delta is an
// improvement. An empty current summary yields an empty table.
func Rank(current, previous *report.MonthlySummary, metric Metric) Table {
	table := Table{Metric: metric}
	if current == nil || len(current.Reports) == 0 {
		return table
	}

	ordered := sortByMetric(current.Reports, metric)

	var prevRanks map[string]int
	if previous != nil {
		prevRanks = make(map[string]int)
		for i, r := range sortByMetric(previous.Reports, metric) {
			prevRanks[r.TLD] = i + 1
		}
	}

	for i, r := range ordered {
		rank := i + 1
		entry := Entry{
			TLD:  r.TLD,
			Name: r.Name,
			Rank: rank,
		}
		if score, ok := metric.score(&r); ok {
			entry.Score = score
		}
		if prev, ok := prevRanks[r.TLD]; ok {
			delta := prev - rank
			entry.PrevRank = &prev
			entry.Delta = &delta
		}
		table.Entries = append(table.Entries, entry)
	}

	return table
}

func sortByMetric(reports []report.SiteReport, metric Metric) []report.SiteReport {
	ordered := make([]report.SiteReport, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, iok := metric.score(&ordered[i])
		sj, jok := metric.score(&ordered[j])
		if !iok || !jok {
			return false // no preference, keep input order
		}
		return si > sj
	})
	return ordered
}
