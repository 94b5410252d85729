package ranking

import (
	"fmt"
	"math"

	"github.com/govscope/govscope/pkg/report"
)

// Aggregate computes the per-metric mean across all sites of one month,
// each rounded to the nearest integer (half rounds up). A month with no
// reports has no defined mean and returns an error.
func Aggregate(summary *report.MonthlySummary) (report.Scores, error) {
	if summary == nil || len(summary.Reports) == 0 {
		return report.Scores{}, fmt.Errorf("cannot aggregate an empty month")
	}

	var perf, a11y, best, seo int
	for _, r := range summary.Reports {
		perf += r.Scores.Performance
		a11y += r.Scores.Accessibility
		best += r.Scores.BestPractices
		seo += r.Scores.SEO
	}

	n := float64(len(summary.Reports))
	return report.Scores{
		Performance:   int(math.Round(float64(perf) / n)),
		Accessibility: int(math.Round(float64(a11y) / n)),
		BestPractices: int(math.Round(float64(best) / n)),
		SEO:           int(math.Round(float64(seo) / n)),
	}, nil
}
