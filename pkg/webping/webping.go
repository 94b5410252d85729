// Package webping performs a cheap reachability probe before a site is
// handed to the heavyweight audit engine.
package webping

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const USER_AGENT = "Mozilla/5.0 (X11; Linux x86_64; rv:83.0) Gecko/20100101 Firefox/83.0"

// Probing reads at most this much of the body; the <title> of any sane
// page sits well within it.
const maxProbeBody = 1 << 20

// Result is the outcome of a successful probe.
type Result struct {
	StatusCode int
	Title      string
}

// Probe fetches url and extracts the page title when the body parses as
// HTML. A non-2xx status is returned as an error so callers can fall
// back to a placeholder report without invoking the engine.
func Probe(ctx context.Context, client *http.Client, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept-Language", "en")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("probe of %s returned status %d", url, resp.StatusCode)
	}

	res := &Result{StatusCode: resp.StatusCode}
	if title, ok := htmlTitle(string(body)); ok {
		res.Title = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", ""))
	}
	return res, nil
}

func htmlTitle(body string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title, ok := findTitle(c); ok {
			return title, ok
		}
	}
	return "", false
}
