package ranking

import (
	"reflect"
	"testing"

	"github.com/govscope/govscope/pkg/report"
)

func TestHistorySkipsMissingMonths(t *testing.T) {
	// Unordered input, and the site is absent in 2024-02.
	summaries := []report.MonthlySummary{
		*month("2024-03", report.SiteReport{TLD: "uk", Name: "United Kingdom", Scores: report.Scores{Performance: 85, Accessibility: 91, BestPractices: 92, SEO: 93}}),
		*month("2024-01", report.SiteReport{TLD: "uk", Name: "United Kingdom", Scores: report.Scores{Performance: 80, Accessibility: 90, BestPractices: 90, SEO: 90}}),
		*month("2024-02", report.SiteReport{TLD: "de", Name: "Germany", Scores: report.Scores{Performance: 95}}),
	}

	series := History(summaries, "uk")
	if series == nil {
		t.Fatal("expected a series")
	}
	if series.TLD != "uk" || series.Name != "United Kingdom" {
		t.Errorf("identity = %s/%s", series.TLD, series.Name)
	}

	wantPerf := []Point{{Month: "2024-01", Value: 80}, {Month: "2024-03", Value: 85}}
	if !reflect.DeepEqual(series.Performance, wantPerf) {
		t.Errorf("performance = %v, want %v", series.Performance, wantPerf)
	}

	// All four series are month-aligned.
	for name, s := range map[string][]Point{
		"accessibility": series.Accessibility,
		"bestPractices": series.BestPractices,
		"seo":           series.SEO,
	} {
		if len(s) != 2 || s[0].Month != "2024-01" || s[1].Month != "2024-03" {
			t.Errorf("%s series misaligned: %v", name, s)
		}
	}
}

func TestHistoryUnknownSite(t *testing.T) {
	summaries := []report.MonthlySummary{
		*month("2024-01", report.SiteReport{TLD: "uk", Name: "United Kingdom"}),
	}
	if got := History(summaries, "fr"); got != nil {
		t.Errorf("series = %+v, want nil", got)
	}
	if got := History(nil, "uk"); got != nil {
		t.Errorf("series over no months = %+v, want nil", got)
	}
}
