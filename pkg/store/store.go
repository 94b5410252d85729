// Package store persists report documents as JSON files under a single
// data directory. The layout is fixed:
//
//	countries.json                 static site list
//	reports/manifest.json          index of monthly summaries
//	reports/<month>-summary.json   monthly summary (summary form)
//	reports/<month>/<tld>.json     per-site detail report
//	reports/<month>.json           legacy single-file month (read-only)
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/govscope/govscope/internal/utils"
	"github.com/govscope/govscope/pkg/report"
)

// Store reads and writes documents under a root directory injected at
// construction. Single-writer, single-process: the audit run owns the
// directory while it runs.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// CountriesPath is where the static site list lives.
func (s *Store) CountriesPath() string {
	return filepath.Join(s.root, "countries.json")
}

// ReportsDir is the directory served as static files by the serve command.
func (s *Store) ReportsDir() string {
	return filepath.Join(s.root, "reports")
}

// SummaryFilename is the manifest-visible filename of a month's summary.
func SummaryFilename(month string) string {
	return month + "-summary.json"
}

// LoadManifest returns the summary index. A missing manifest is a normal
// first-run condition and yields an empty one; a malformed manifest is
// treated the same way, with a warning.
func (s *Store) LoadManifest() *report.Manifest {
	var m report.Manifest
	if !s.readDoc(filepath.Join(s.ReportsDir(), "manifest.json"), &m) {
		return &report.Manifest{}
	}
	return &m
}

func (s *Store) SaveManifest(m *report.Manifest) error {
	return s.writeDoc(filepath.Join(s.ReportsDir(), "manifest.json"), m)
}

// summaryFormat is one named way a month may be stored on disk. Formats
// are tried in order; the first one that produces a summary wins.
type summaryFormat struct {
	name string
	load func(month string) *report.MonthlySummary
}

func (s *Store) summaryFormats() []summaryFormat {
	return []summaryFormat{
		{name: "summary", load: s.loadSummaryFile},
		{name: "legacy-month", load: s.loadLegacyMonth},
	}
}

// LoadSummary returns the summary for month, or nil when no format has
// it. Absence is not an error.
func (s *Store) LoadSummary(month string) *report.MonthlySummary {
	for _, f := range s.summaryFormats() {
		if sum := f.load(month); sum != nil {
			utils.Log.Debugf("Loaded %s via %s format", month, f.name)
			return sum
		}
	}
	return nil
}

func (s *Store) loadSummaryFile(month string) *report.MonthlySummary {
	var sum report.MonthlySummary
	if !s.readDoc(filepath.Join(s.ReportsDir(), SummaryFilename(month)), &sum) {
		return nil
	}
	return &sum
}

// loadLegacyMonth reads the old single-file format, where one document
// held the whole month with full detail reports, and projects it down to
// summary form.
func (s *Store) loadLegacyMonth(month string) *report.MonthlySummary {
	var sum report.MonthlySummary
	if !s.readDoc(filepath.Join(s.ReportsDir(), month+".json"), &sum) {
		return nil
	}
	for i := range sum.Reports {
		sum.Reports[i] = sum.Reports[i].Summary()
	}
	return &sum
}

func (s *Store) SaveSummary(sum *report.MonthlySummary) error {
	return s.writeDoc(filepath.Join(s.ReportsDir(), SummaryFilename(sum.Month)), sum)
}

// SaveDetail overwrites the site's detail document for the month. Detail
// carries no history, so this is always a full replacement.
func (s *Store) SaveDetail(month string, r *report.SiteReport) error {
	return s.writeDoc(filepath.Join(s.ReportsDir(), month, r.TLD+".json"), r)
}

// LoadDetail returns the detail report for month/tld, or nil when absent.
func (s *Store) LoadDetail(month, tld string) *report.SiteReport {
	var r report.SiteReport
	if !s.readDoc(filepath.Join(s.ReportsDir(), month, tld+".json"), &r) {
		return nil
	}
	return &r
}

// LoadAllSummaries walks the manifest and loads every readable month.
// Months that fail to load are skipped, not fatal.
func (s *Store) LoadAllSummaries() []report.MonthlySummary {
	manifest := s.LoadManifest()
	var out []report.MonthlySummary
	for _, entry := range manifest.Reports {
		if sum := s.LoadSummary(entry.Month); sum != nil {
			out = append(out, *sum)
		}
	}
	return out
}

// readDoc loads a JSON document into v. Missing documents and malformed
// documents both report false; malformed ones additionally warn, since
// that usually means a partial write worth investigating.
func (s *Store) readDoc(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Log.Warnf("Could not read %s: %v", path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		utils.Log.Warnf("Malformed document %s, treating as missing: %v", path, err)
		return false
	}
	return true
}

func (s *Store) writeDoc(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
