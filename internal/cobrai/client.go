// Package cobrai provides a minimal client for cobr.ai tournament exports.
package cobrai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the root endpoint for cobr.ai.
const DefaultBaseURL = "https://cobr.ai"

// Client is a minimal cobr.ai client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL; an empty baseURL means DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Tournament downloads the JSON export of the tournament with the given id.
// The body is returned unparsed after checking that it is valid JSON.
func (c *Client) Tournament(ctx context.Context, id string) ([]byte, error) {
	path := "/tournaments/" + url.PathEscape(id) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("GET %s: response is not JSON", path)
	}
	return body, nil
}
