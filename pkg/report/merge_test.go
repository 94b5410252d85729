package report

import (
	"reflect"
	"testing"
	"time"
)

func summaryReport(tld, name string, perf int) SiteReport {
	return SiteReport{
		TLD:    tld,
		Name:   name,
		URL:    "https://example." + tld,
		Scores: Scores{Performance: perf, Accessibility: 90, BestPractices: 90, SEO: 90},
	}
}

func detailReport(tld, name string, perf int) SiteReport {
	r := summaryReport(tld, name, perf)
	r.Issues = map[string][]Issue{"performance": {{ID: "slow", Severity: SeverityMedium}}}
	r.Timing = &Timing{}
	return r
}

func TestMergeIntoEmpty(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := []SiteReport{
		detailReport("uk", "United Kingdom", 80),
		detailReport("de", "Germany", 95),
	}

	got := Merge(nil, "2024-03", batch, now)

	if got.Month != "2024-03" || !got.GeneratedAt.Equal(now) {
		t.Errorf("month/generatedAt = %s/%v", got.Month, got.GeneratedAt)
	}
	// Sorted by name, and projected to summary form.
	want := []SiteReport{
		summaryReport("de", "Germany", 95),
		summaryReport("uk", "United Kingdom", 80),
	}
	if !reflect.DeepEqual(got.Reports, want) {
		t.Errorf("reports = %+v, want %+v", got.Reports, want)
	}
}

func TestMergeReplacesByIdentifier(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	prior := &MonthlySummary{
		Month: "2024-03",
		Reports: []SiteReport{
			summaryReport("de", "Germany", 95),
			summaryReport("uk", "United Kingdom", 80),
		},
	}

	got := Merge(prior, "2024-03", []SiteReport{detailReport("uk", "United Kingdom", 85)}, now)

	if len(got.Reports) != 2 {
		t.Fatalf("len = %d, want 2 (replace, not append)", len(got.Reports))
	}
	uk := got.Find("uk")
	if uk == nil || uk.Scores.Performance != 85 {
		t.Errorf("uk = %+v, want replaced with performance 85", uk)
	}
	if got.Find("de").Scores.Performance != 95 {
		t.Error("unrelated entry was touched")
	}
}

func TestMergeIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := []SiteReport{
		detailReport("uk", "United Kingdom", 80),
		detailReport("de", "Germany", 95),
	}

	first := Merge(nil, "2024-03", batch, now)
	second := Merge(first, "2024-03", batch, now.Add(time.Hour))

	if !reflect.DeepEqual(first.Reports, second.Reports) {
		t.Errorf("re-running the same batch changed content:\n%+v\n%+v", first.Reports, second.Reports)
	}
	if !second.GeneratedAt.Equal(now.Add(time.Hour)) {
		t.Error("generatedAt must reflect the latest write")
	}
}

func TestMergeDoesNotMutatePrior(t *testing.T) {
	prior := &MonthlySummary{
		Month:   "2024-03",
		Reports: []SiteReport{summaryReport("uk", "United Kingdom", 80)},
	}
	Merge(prior, "2024-03", []SiteReport{detailReport("uk", "United Kingdom", 10)}, time.Now())

	if prior.Reports[0].Scores.Performance != 80 {
		t.Error("prior summary was mutated")
	}
}
