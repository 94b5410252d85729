// Package sites loads the static list of tracked websites.
package sites

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// Site is one tracked website. Sites are static configuration and are
// never mutated by the audit pipeline.
type Site struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	TLD  string `json:"tld"`
}

type siteList struct {
	Countries []Site `json:"countries"`
}

// Load reads the site list document. A missing or unreadable list is a
// configuration fault and aborts before any audit work; callers should
// treat the returned error as fatal.
func Load(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site list: %w", err)
	}

	var list siteList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing site list %s: %w", path, err)
	}
	if len(list.Countries) == 0 {
		return nil, fmt.Errorf("site list %s contains no sites", path)
	}

	seen := make(map[string]bool)
	for i := range list.Countries {
		s := &list.Countries[i]
		if s.URL == "" {
			return nil, fmt.Errorf("site %q has no url", s.Name)
		}
		if s.TLD == "" {
			tld, err := DeriveTLD(s.URL)
			if err != nil {
				return nil, fmt.Errorf("site %q: %w", s.Name, err)
			}
			s.TLD = tld
		}
		if seen[s.TLD] {
			return nil, fmt.Errorf("duplicate site identifier %q", s.TLD)
		}
		seen[s.TLD] = true
	}

	return list.Countries, nil
}

// DeriveTLD extracts the short country identifier from a site URL, e.g.
// "https://www.gov.uk" -> "uk". Multi-label public suffixes like gov.uk
// reduce to their final label.
func DeriveTLD(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("cannot derive identifier from %q", rawURL)
	}

	parsed, err := publicsuffix.Parse(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("cannot derive identifier from %q: %w", rawURL, err)
	}

	labels := strings.Split(parsed.TLD, ".")
	return labels[len(labels)-1], nil
}
