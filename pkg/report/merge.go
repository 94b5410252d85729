package report

import (
	"sort"
	"time"
)

// Merge combines a batch of freshly extracted reports with the previously
// persisted summary for the same month. Entries are merged by tld: a new
// report replaces an existing one, otherwise it is appended. The result
// is sorted by site name and only carries summary-form entries; detail
// documents are persisted separately by the caller.
//
// Merging the same batch twice yields the same summary content, modulo
// GeneratedAt which always reflects the latest write.
func Merge(prior *MonthlySummary, month string, batch []SiteReport, now time.Time) *MonthlySummary {
	merged := &MonthlySummary{
		Month:       month,
		GeneratedAt: now,
	}
	if prior != nil {
		merged.Reports = append(merged.Reports, prior.Reports...)
	}

	for _, r := range batch {
		entry := r.Summary()
		replaced := false
		for i := range merged.Reports {
			if merged.Reports[i].TLD == entry.TLD {
				merged.Reports[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Reports = append(merged.Reports, entry)
		}
	}

	sort.SliceStable(merged.Reports, func(i, j int) bool {
		return merged.Reports[i].Name < merged.Reports[j].Name
	})

	return merged
}
