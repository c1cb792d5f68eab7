package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const maxPageSize = 32 << 20 // 32 MB; model pages carry large embedded payloads

// ClientConfig holds fetch behavior. Everything is explicit configuration
// so callers and tests never depend on package-level state.
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RequestDelay time.Duration // pacing between requests; zero disables
}

// Client fetches rankings and model pages with browser-like headers and
// polite pacing between requests.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a page fetch client.
func NewClient(cfg ClientConfig) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// FetchRankingsPage returns the raw rankings page HTML.
func (c *Client) FetchRankingsPage(ctx context.Context) (string, error) {
	return c.get(ctx, "/rankings")
}

// FetchModelPage returns the raw HTML of one model's detail page.
func (c *Client) FetchModelPage(ctx context.Context, slug string) (string, error) {
	return c.get(ctx, "/"+slug)
}

func (c *Client) get(ctx context.Context, path string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("scrape: waiting for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("scrape: creating request: %w", err)
	}

	// The rankings site serves a reduced page to non-browser agents.
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape: fetching %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scrape: fetching %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("scrape: reading %s: %w", path, err)
	}
	return string(body), nil
}
