package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	modelsPath     = "/api/v1/models"
	requestTimeout = 30 * time.Second
	maxBodySize    = 16 << 20 // 16 MB; the full feed is a few MB
)

// Client fetches the public models feed.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a pricing feed client for the given base URL
// (e.g., "https://openrouter.ai").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

type feedResponse struct {
	Data []RawEntry `json:"data"`
}

// FetchEntries fetches all model entries from the feed, in feed order.
func (c *Client) FetchEntries(ctx context.Context) ([]RawEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("pricing: creating request: %w", err)
	}

	req.Header.Set("User-Agent", "orstats/1.0 (github.com/johnbean393/orstats)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pricing: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("pricing: reading response: %w", err)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("pricing: parsing feed: %w", err)
	}
	return feed.Data, nil
}
