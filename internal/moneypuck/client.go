// Package moneypuck downloads shot CSVs from moneypuck.com.
package moneypuck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://moneypuck.com/moneypuck/playerData/shots"

// Client is a minimal HTTP client for the public moneypuck shot exports.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the public moneypuck endpoint.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithBaseURL overrides the endpoint; used by tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// FetchSeasonCSV downloads the raw shot CSV for a season label ("2023",
// "2024", ...). The body is returned unparsed so the caller can hash it for
// the dataset key before ingesting.
func (c *Client) FetchSeasonCSV(ctx context.Context, season string) ([]byte, error) {
	url := fmt.Sprintf("%s/shots_%s.csv", c.baseURL, season)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moneypuck: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to the body read
	case http.StatusNotFound:
		return nil, fmt.Errorf("moneypuck: no shot export for season %q (seasons are labeled by starting year, e.g. 2023)", season)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("moneypuck: rate limited, wait a moment and retry")
	default:
		return nil, fmt.Errorf("moneypuck: HTTP %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("moneypuck: read body: %w", err)
	}
	return body, nil
}
