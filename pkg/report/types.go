package report

import "time"

// Category keys, in display order. These match the category identifiers
// used by the audit engine.
const (
	CategoryPerformance   = "performance"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
	CategorySEO           = "seo"
)

// Categories lists all tracked categories in display order.
var Categories = []string{
	CategoryPerformance,
	CategoryAccessibility,
	CategoryBestPractices,
	CategorySEO,
}

// Severity classifies how badly an issue failed its audit.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Scores holds the four category scores of one site, each an integer in [0,100].
type Scores struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	SEO           int `json:"seo"`
}

// Issue is a single failed or informative audit check within a category.
// Immutable once extracted.
type Issue struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode"`
	DisplayValue     string   `json:"displayValue,omitempty"`
	Severity         Severity `json:"severity"`
	Weight           float64  `json:"weight"`
	NumericValue     *float64 `json:"numericValue,omitempty"`
	NumericUnit      string   `json:"numericUnit,omitempty"`
}

// Timing holds the raw timing metrics of one audit run. Fields are nil
// when the engine did not report the metric.
type Timing struct {
	FirstContentfulPaint   *float64 `json:"firstContentfulPaint"`
	LargestContentfulPaint *float64 `json:"largestContentfulPaint"`
	TotalBlockingTime      *float64 `json:"totalBlockingTime"`
	CumulativeLayoutShift  *float64 `json:"cumulativeLayoutShift"`
	SpeedIndex             *float64 `json:"speedIndex"`
}

// SiteReport is the result of auditing one site once. The detail form
// carries Issues and Timing; the summary form carries scores only.
type SiteReport struct {
	TLD         string             `json:"tld"`
	Name        string             `json:"name"`
	URL         string             `json:"url"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Scores      Scores             `json:"scores"`
	Issues      map[string][]Issue `json:"issues,omitempty"`
	Timing      *Timing            `json:"timing,omitempty"`
}

// Summary returns the score-only projection of the report.
func (r SiteReport) Summary() SiteReport {
	r.Issues = nil
	r.Timing = nil
	return r
}

// MonthlySummary is one month's worth of summary-form site reports,
// unique by tld, sorted by site name.
type MonthlySummary struct {
	Month       string       `json:"month"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Reports     []SiteReport `json:"reports"`
}

// Find returns the report for tld, or nil if the site is absent this month.
func (s *MonthlySummary) Find(tld string) *SiteReport {
	if s == nil {
		return nil
	}
	for i := range s.Reports {
		if s.Reports[i].TLD == tld {
			return &s.Reports[i]
		}
	}
	return nil
}

// CurrentMonth returns the current month key in YYYY-MM form (UTC).
func CurrentMonth() string {
	return time.Now().UTC().Format("2006-01")
}
