package ranking

import (
	"sort"

	"github.com/govscope/govscope/pkg/report"
)

// Point is one month's value of one metric.
type Point struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

// Series holds one site's four metric series over time. The four slices
// are month-aligned: they all derive from the same retained months.
type Series struct {
	TLD           string  `json:"tld"`
	Name          string  `json:"name"`
	Performance   []Point `json:"performance"`
	Accessibility []Point `json:"accessibility"`
	BestPractices []Point `json:"bestPractices"`
	SEO           []Point `json:"seo"`
}

// History builds the chronological score series of one site across all
// supplied summaries. Months where the site is absent are skipped, with
// no interpolation. Returns nil when the site appears in no month.
func History(summaries []report.MonthlySummary, tld string) *Series {
	ordered := make([]report.MonthlySummary, len(summaries))
	copy(ordered, summaries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Month < ordered[j].Month
	})

	var series *Series
	for i := range ordered {
		r := ordered[i].Find(tld)
		if r == nil {
			continue
		}
		if series == nil {
			series = &Series{TLD: r.TLD, Name: r.Name}
		}
		month := ordered[i].Month
		series.Performance = append(series.Performance, Point{Month: month, Value: r.Scores.Performance})
		series.Accessibility = append(series.Accessibility, Point{Month: month, Value: r.Scores.Accessibility})
		series.BestPractices = append(series.BestPractices, Point{Month: month, Value: r.Scores.BestPractices})
		series.SEO = append(series.SEO, Point{Month: month, Value: r.Scores.SEO})
	}

	return series
}
