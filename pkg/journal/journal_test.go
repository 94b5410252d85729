package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/govscope/govscope/pkg/report"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func scores(perf int) report.SiteReport {
	return report.SiteReport{
		TLD:    "uk",
		Name:   "United Kingdom",
		Scores: report.Scores{Performance: perf, Accessibility: 90, BestPractices: 90, SEO: 90},
	}
}

func TestRecordRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// First run of a month: nothing to diff against.
	changes, err := db.RecordRun(ctx, "2024-03", []report.SiteReport{scores(80)})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("first run changes = %+v, want none", changes)
	}

	// Identical re-run: still nothing.
	changes, err = db.RecordRun(ctx, "2024-03", []report.SiteReport{scores(80)})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("identical re-run changes = %+v, want none", changes)
	}

	// A moved score produces exactly one change row.
	changes, err = db.RecordRun(ctx, "2024-03", []report.SiteReport{scores(85)})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %+v, want one", changes)
	}
	c := changes[0]
	if c.Month != "2024-03" || c.TLD != "uk" || c.Category != report.CategoryPerformance {
		t.Errorf("change identity = %+v", c)
	}
	if c.OldScore != 80 || c.NewScore != 85 {
		t.Errorf("change scores = %d -> %d, want 80 -> 85", c.OldScore, c.NewScore)
	}

	// Another month is a separate identity, no diff against 2024-03.
	changes, err = db.RecordRun(ctx, "2024-04", []report.SiteReport{scores(70)})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("new month changes = %+v, want none", changes)
	}

	listed, err := db.ListRecentChanges(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentChanges: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed = %+v, want one", listed)
	}
	if listed[0].OldScore != 80 || listed[0].NewScore != 85 {
		t.Errorf("listed change = %+v", listed[0])
	}
}
