// Package audit normalizes raw engine output into site reports.
package audit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/govscope/govscope/pkg/lighthouse"
	"github.com/govscope/govscope/pkg/report"
	"github.com/govscope/govscope/pkg/sites"
)

// Extract builds the detail-form report for one site from one engine run.
// It fails closed when any of the four categories is missing or carries
// no score; the batch driver substitutes a Placeholder in that case so a
// single bad site never blocks the rest of the batch.
func Extract(site sites.Site, raw *lighthouse.RawResult, now time.Time) (*report.SiteReport, error) {
	if raw == nil {
		return nil, fmt.Errorf("no audit result for %s", site.TLD)
	}

	r := &report.SiteReport{
		TLD:         site.TLD,
		Name:        site.Name,
		URL:         site.URL,
		GeneratedAt: now,
		Issues:      make(map[string][]report.Issue),
		Timing:      extractTiming(raw),
	}

	for _, key := range report.Categories {
		cat, ok := raw.Categories[key]
		if !ok || cat.Score == nil {
			return nil, fmt.Errorf("category %q missing from audit result for %s", key, site.TLD)
		}

		score := int(math.Round(*cat.Score * 100))
		switch key {
		case report.CategoryPerformance:
			r.Scores.Performance = score
		case report.CategoryAccessibility:
			r.Scores.Accessibility = score
		case report.CategoryBestPractices:
			r.Scores.BestPractices = score
		case report.CategorySEO:
			r.Scores.SEO = score
		}

		r.Issues[key] = extractIssues(cat, raw.Audits)
	}

	return r, nil
}

// Placeholder is the zero-score report recorded when a site could not be
// audited. It carries no issues or timing.
func Placeholder(site sites.Site, now time.Time) *report.SiteReport {
	return &report.SiteReport{
		TLD:         site.TLD,
		Name:        site.Name,
		URL:         site.URL,
		GeneratedAt: now,
	}
}

// extractIssues filters the category's audits down to the ones worth
// showing and orders them by severity, then weight.
func extractIssues(cat lighthouse.Category, audits map[string]lighthouse.Audit) []report.Issue {
	var issues []report.Issue
	for _, ref := range cat.AuditRefs {
		a, ok := audits[ref.ID]
		if !ok {
			continue
		}

		// A nil score means the check did not apply; it counts as passing
		// unless the audit is informative and has detail content to show.
		effective := 1.0
		if a.Score != nil {
			effective = *a.Score
		}
		informative := a.ScoreDisplayMode == "informative" && a.HasDetails
		if effective >= 1 && !informative {
			continue
		}

		issues = append(issues, report.Issue{
			ID:               ref.ID,
			Title:            a.Title,
			Description:      a.Description,
			Score:            a.Score,
			ScoreDisplayMode: a.ScoreDisplayMode,
			DisplayValue:     a.DisplayValue,
			Severity:         classify(a.Score),
			Weight:           ref.Weight,
			NumericValue:     a.NumericValue,
			NumericUnit:      a.NumericUnit,
		})
	}

	// Stable sort keeps input order on ties, so re-extracting identical
	// input yields identical ordering.
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := severityRank(issues[i].Severity), severityRank(issues[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return issues[i].Weight > issues[j].Weight
	})

	return issues
}

// classify maps a raw audit score to a severity bucket. A nil score has
// no failing signal and lands in the low bucket.
func classify(score *float64) report.Severity {
	switch {
	case score == nil:
		return report.SeverityLow
	case *score == 0:
		return report.SeverityHigh
	case *score < 0.5:
		return report.SeverityMedium
	default:
		return report.SeverityLow
	}
}

func severityRank(s report.Severity) int {
	switch s {
	case report.SeverityHigh:
		return 0
	case report.SeverityMedium:
		return 1
	default:
		return 2
	}
}

func extractTiming(raw *lighthouse.RawResult) *report.Timing {
	return &report.Timing{
		FirstContentfulPaint:   timingValue(raw, lighthouse.TimingFirstContentfulPaint),
		LargestContentfulPaint: timingValue(raw, lighthouse.TimingLargestContentfulPaint),
		TotalBlockingTime:      timingValue(raw, lighthouse.TimingTotalBlockingTime),
		CumulativeLayoutShift:  timingValue(raw, lighthouse.TimingCumulativeLayoutShift),
		SpeedIndex:             timingValue(raw, lighthouse.TimingSpeedIndex),
	}
}

func timingValue(raw *lighthouse.RawResult, key string) *float64 {
	a, ok := raw.Audits[key]
	if !ok {
		return nil
	}
	return a.NumericValue
}
