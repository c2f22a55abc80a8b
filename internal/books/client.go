// Package books is the client for the bibliographic search API. The API
// returns loosely-structured JSON whose shape drifts between deployments,
// so all key probing is confined to the normalization boundary here;
// callers only ever see the typed Record.
package books

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/daye-lim/shelfmate/internal/config"
	"github.com/daye-lim/shelfmate/internal/retry"
)

// Record is a normalized catalog entry.
type Record struct {
	Title     string
	Author    string
	Publisher string
	ISBN      string
	CoverURL  string

	// Synopsis is inline introduction text when the API returned it.
	Synopsis string

	// SynopsisURL points at a linked document that needs a follow-up
	// fetch and HTML scrape when Synopsis is empty.
	SynopsisURL string
}

// Key returns the record's natural key: ISBN when present, otherwise
// title+author.
func (r Record) Key() string {
	if r.ISBN != "" {
		return r.ISBN
	}
	return r.Title + "|" + r.Author
}

// Query describes one paginated search.
type Query struct {
	Title    string
	Author   string
	Keywords string
	Page     int
	PageSize int
}

// Client calls the catalog search API with the shared retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	policy     retry.Policy
}

// NewClient builds a catalog client.
func NewClient(cfg config.CatalogConfig, timeout time.Duration, policy retry.Policy) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		policy:     policy,
	}
}

// Search runs one paginated query and normalizes the response. A timeout
// or transient server error is retried per the policy; a definitive
// client error is not.
func (c *Client) Search(ctx context.Context, q Query) ([]Record, error) {
	params := url.Values{}
	params.Set("format", "json")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if q.Title != "" {
		params.Set("title", q.Title)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if q.Keywords != "" {
		params.Set("q", q.Keywords)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 10
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(size))

	endpoint := c.baseURL + "/search?" + params.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return normalizeResults(payload), nil
}

// FetchDocument retrieves a linked document (synopsis page) as raw text.
func (c *Client) FetchDocument(ctx context.Context, docURL string) (string, error) {
	body, err := c.get(ctx, docURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("catalog responded %d", resp.StatusCode)
		default:
			return retry.Permanent(fmt.Errorf("catalog responded %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}
