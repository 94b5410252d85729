package lighthouse

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/govscope/govscope/internal/utils"
)

const (
	PAGESPEED_ENDPOINT       = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	RATE_LIMIT_WAIT_TIME_SEC = 5
	RATE_LIMIT_MAX_RETRIES   = 10
	RATE_LIMIT_HTTP_STATUS   = 429
)

// Client runs audits through the PageSpeed Insights API, which wraps the
// Lighthouse engine. One call is one full browser-automation session on
// Google's side, so callers are expected to pace themselves.
type Client struct {
	APIKey   string
	Strategy string // "mobile" or "desktop"
	http     *retryablehttp.Client
}

// NewClient builds a client with retry handling for transient failures.
// The engine is slow; timeout bounds a full Lighthouse run.
func NewClient(apiKey, strategy string, timeout time.Duration) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = stdlog.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = timeout

	return &Client{
		APIKey:   apiKey,
		Strategy: strategy,
		http:     retryClient,
	}
}

// Audit runs the engine against pageURL and returns the validated result.
func (c *Client) Audit(ctx context.Context, pageURL string) (*RawResult, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("strategy", c.Strategy)
	for _, cat := range CategoryKeys {
		q.Add("category", cat)
	}
	if c.APIKey != "" {
		q.Set("key", c.APIKey)
	}
	reqURL := PAGESPEED_ENDPOINT + "?" + q.Encode()

	var body string
	lastStatus := -1
	for i := 0; i < RATE_LIMIT_MAX_RETRIES; i++ {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("engine request failed: %w", err)
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode != RATE_LIMIT_HTTP_STATUS {
			body = string(raw)
			break
		}

		// encountered rate limit
		utils.Log.Debug("Engine rate limited, waiting before retry ", i+1)
		select {
		case <-time.After(RATE_LIMIT_WAIT_TIME_SEC * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if lastStatus != http.StatusOK {
		msg := gjson.Get(body, "error.message").Str
		if msg == "" {
			msg = "no error detail"
		}
		return nil, fmt.Errorf("engine returned status %d: %s", lastStatus, msg)
	}

	lhr := gjson.Get(body, "lighthouseResult")
	if !lhr.Exists() {
		return nil, fmt.Errorf("engine response has no lighthouseResult")
	}

	return ParseResult(lhr.Raw)
}
