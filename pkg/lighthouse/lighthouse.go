// Package lighthouse talks to the external page-quality auditing engine
// and turns its loosely-typed JSON output into a validated RawResult.
package lighthouse

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Category identifiers expected in every complete engine result.
var CategoryKeys = []string{"performance", "accessibility", "best-practices", "seo"}

// Audit identifiers of the fixed timing entries.
const (
	TimingFirstContentfulPaint   = "first-contentful-paint"
	TimingLargestContentfulPaint = "largest-contentful-paint"
	TimingTotalBlockingTime      = "total-blocking-time"
	TimingCumulativeLayoutShift  = "cumulative-layout-shift"
	TimingSpeedIndex             = "speed-index"
)

// Source produces one raw audit result per site URL.
type Source interface {
	Audit(ctx context.Context, url string) (*RawResult, error)
}

// RawResult is the validated shape of one engine run.
type RawResult struct {
	Categories map[string]Category
	Audits     map[string]Audit
}

// Category holds the overall fractional score of one category and the
// audits that contribute to it.
type Category struct {
	Score     *float64
	AuditRefs []AuditRef
}

// AuditRef links a category to an audit with its relative weight.
type AuditRef struct {
	ID     string
	Weight float64
}

// Audit is the engine's detail record for a single check.
type Audit struct {
	Title            string
	Description      string
	Score            *float64
	ScoreDisplayMode string
	DisplayValue     string
	NumericValue     *float64
	NumericUnit      string
	HasDetails       bool
}

// ParseResult validates and converts the engine's lighthouseResult JSON
// subtree. Malformed audit entries are dropped here so they never reach
// extraction; a missing or score-less category is kept as-is (nil score)
// and rejected later by the extractor.
func ParseResult(body string) (*RawResult, error) {
	root := gjson.Parse(body)
	if !root.Get("categories").Exists() || !root.Get("audits").Exists() {
		return nil, fmt.Errorf("engine result missing categories or audits")
	}

	res := &RawResult{
		Categories: make(map[string]Category),
		Audits:     make(map[string]Audit),
	}

	root.Get("categories").ForEach(func(key, cat gjson.Result) bool {
		c := Category{Score: optFloat(cat.Get("score"))}
		cat.Get("auditRefs").ForEach(func(_, ref gjson.Result) bool {
			id := ref.Get("id").Str
			if id == "" {
				return true // skip malformed ref
			}
			c.AuditRefs = append(c.AuditRefs, AuditRef{
				ID:     id,
				Weight: ref.Get("weight").Float(),
			})
			return true
		})
		res.Categories[key.Str] = c
		return true
	})

	root.Get("audits").ForEach(func(key, a gjson.Result) bool {
		id := key.Str
		if id == "" || !a.IsObject() {
			return true
		}
		res.Audits[id] = Audit{
			Title:            a.Get("title").Str,
			Description:      a.Get("description").Str,
			Score:            optFloat(a.Get("score")),
			ScoreDisplayMode: a.Get("scoreDisplayMode").Str,
			DisplayValue:     a.Get("displayValue").Str,
			NumericValue:     optFloat(a.Get("numericValue")),
			NumericUnit:      a.Get("numericUnit").Str,
			HasDetails:       a.Get("details").IsObject(),
		}
		return true
	})

	return res, nil
}

func optFloat(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
