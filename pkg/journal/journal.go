// Package journal keeps a sqlite log of score movements across audit
// runs. It is additive bookkeeping: the JSON report documents stay the
// source of truth, and a missing journal never fails a run.
package journal

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/govscope/govscope/pkg/report"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS site_scores (
  id             INTEGER PRIMARY KEY,
  month          TEXT NOT NULL,
  tld            TEXT NOT NULL,
  performance    INTEGER NOT NULL,
  accessibility  INTEGER NOT NULL,
  best_practices INTEGER NOT NULL,
  seo            INTEGER NOT NULL,
  recorded_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(month, tld)
);
CREATE TABLE IF NOT EXISTS score_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  month       TEXT NOT NULL,
  tld         TEXT NOT NULL,
  category    TEXT NOT NULL,
  old_score   INTEGER NOT NULL,
  new_score   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON score_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_scores_month ON site_scores(month, tld);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Change is one category score moving between two runs of the same month.
type Change struct {
	OccurredAt time.Time
	Month      string
	TLD        string
	Category   string
	OldScore   int
	NewScore   int
}

// RecordRun upserts the batch's scores for the month and logs a change
// row for every category score that moved since the previous run.
func (d *DB) RecordRun(ctx context.Context, month string, reports []report.SiteReport) ([]Change, error) {
	now := time.Now().UTC()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var changes []Change
	for _, r := range reports {
		var old report.Scores
		row := tx.QueryRowContext(ctx,
			`SELECT performance, accessibility, best_practices, seo FROM site_scores WHERE month = ? AND tld = ?`,
			month, r.TLD)
		scanErr := row.Scan(&old.Performance, &old.Accessibility, &old.BestPractices, &old.SEO)
		existed := scanErr == nil
		if scanErr != nil && scanErr != sql.ErrNoRows {
			err = scanErr
			return nil, err
		}

		if _, err = tx.ExecContext(ctx, `
INSERT INTO site_scores(month, tld, performance, accessibility, best_practices, seo, recorded_at)
VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
ON CONFLICT(month, tld) DO UPDATE SET
  performance = excluded.performance,
  accessibility = excluded.accessibility,
  best_practices = excluded.best_practices,
  seo = excluded.seo,
  recorded_at = CURRENT_TIMESTAMP`,
			month, r.TLD, r.Scores.Performance, r.Scores.Accessibility, r.Scores.BestPractices, r.Scores.SEO); err != nil {
			return nil, err
		}

		if !existed {
			continue
		}
		for _, diff := range diffScores(old, r.Scores) {
			change := Change{
				OccurredAt: now,
				Month:      month,
				TLD:        r.TLD,
				Category:   diff.category,
				OldScore:   diff.old,
				NewScore:   diff.new,
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO score_changes(occurred_at, month, tld, category, old_score, new_score) VALUES(CURRENT_TIMESTAMP,?,?,?,?,?)`,
				month, r.TLD, diff.category, diff.old, diff.new); err != nil {
				return nil, err
			}
			changes = append(changes, change)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

type scoreDiff struct {
	category string
	old, new int
}

func diffScores(old, cur report.Scores) []scoreDiff {
	var diffs []scoreDiff
	if old.Performance != cur.Performance {
		diffs = append(diffs, scoreDiff{report.CategoryPerformance, old.Performance, cur.Performance})
	}
	if old.Accessibility != cur.Accessibility {
		diffs = append(diffs, scoreDiff{report.CategoryAccessibility, old.Accessibility, cur.Accessibility})
	}
	if old.BestPractices != cur.BestPractices {
		diffs = append(diffs, scoreDiff{report.CategoryBestPractices, old.BestPractices, cur.BestPractices})
	}
	if old.SEO != cur.SEO {
		diffs = append(diffs, scoreDiff{report.CategorySEO, old.SEO, cur.SEO})
	}
	return diffs
}

// ListRecentChanges returns the most recent score movements.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx,
		`SELECT occurred_at, month, tld, category, old_score, new_score FROM score_changes ORDER BY occurred_at DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []Change{}
	for rows.Next() {
		var c Change
		var occurredAt string
		if err := rows.Scan(&occurredAt, &c.Month, &c.TLD, &c.Category, &c.OldScore, &c.NewScore); err != nil {
			return nil, err
		}
		// Parse SQLite CURRENT_TIMESTAMP format, falling back to RFC3339.
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAt); perr == nil {
			c.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAt); perr2 == nil {
			c.OccurredAt = t2
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}
