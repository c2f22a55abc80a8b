// Package movies is the client for the media metadata API: genre-based
// discovery, image configuration, and per-title overview lookups with a
// secondary-language fallback.
package movies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/daye-lim/shelfmate/internal/config"
	"github.com/daye-lim/shelfmate/internal/retry"
)

// Movie is one discovered title.
type Movie struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Rating     float64 `json:"vote_average"`
	Votes      int     `json:"vote_count"`
	PosterPath string  `json:"poster_path"`
	Overview   string  `json:"overview"`
	Year       int     `json:"-"`
	ReleaseRaw string  `json:"release_date"`
	GenreIDs   []int   `json:"genre_ids"`
}

// ImageConfig carries what is needed to build a full poster URL.
type ImageConfig struct {
	BaseURL    string
	PosterSize string
}

// PosterURL joins the separately-fetched base URL, size descriptor, and
// the movie's poster path. Empty when any part is missing.
func (c ImageConfig) PosterURL(posterPath string) string {
	if c.BaseURL == "" || posterPath == "" {
		return ""
	}
	size := c.PosterSize
	if size == "" {
		size = "w342"
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + size + posterPath
}

// DiscoverQuery describes one discovery request.
type DiscoverQuery struct {
	// GenreIDs are combined with an OR operator.
	GenreIDs []int

	Language     string
	SortBy       string // default "popularity.desc"
	Region       string
	Year         int
	MinVoteCount int
	Page         int
}

// Client calls the media metadata API with the shared retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	policy     retry.Policy
}

// NewClient builds a media metadata client.
func NewClient(cfg config.CatalogConfig, timeout time.Duration, policy retry.Policy) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		policy:     policy,
	}
}

type discoverResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

// Discover returns a page of titles matching the query.
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) ([]Movie, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	if len(q.GenreIDs) > 0 {
		ids := make([]string, len(q.GenreIDs))
		for i, id := range q.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		// Pipe means OR; comma would mean AND.
		params.Set("with_genres", strings.Join(ids, "|"))
	}
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)
	if q.Region != "" {
		params.Set("region", q.Region)
	}
	if q.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(q.Year))
	}
	if q.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, c.baseURL+"/discover/movie?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload discoverResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode discover response: %w", err)
	}

	for i := range payload.Results {
		payload.Results[i].Year = parseYear(payload.Results[i].ReleaseRaw)
	}
	return payload.Results, nil
}

// Configuration fetches the image base URL and preferred poster size.
func (c *Client) Configuration(ctx context.Context) (ImageConfig, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	body, err := c.get(ctx, c.baseURL+"/configuration?"+params.Encode())
	if err != nil {
		return ImageConfig{}, err
	}

	var payload struct {
		Images struct {
			SecureBaseURL string   `json:"secure_base_url"`
			BaseURL       string   `json:"base_url"`
			PosterSizes   []string `json:"poster_sizes"`
		} `json:"images"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ImageConfig{}, fmt.Errorf("decode configuration: %w", err)
	}

	cfg := ImageConfig{BaseURL: payload.Images.SecureBaseURL}
	if cfg.BaseURL == "" {
		cfg.BaseURL = payload.Images.BaseURL
	}
	// Take a mid-range size when available.
	if sizes := payload.Images.PosterSizes; len(sizes) > 0 {
		cfg.PosterSize = sizes[len(sizes)/2]
	}
	return cfg, nil
}

// Overview fetches the overview text for a single title in the given
// language. Used as the fallback when a discovered movie's overview is
// empty in the primary language.
func (c *Client) Overview(ctx context.Context, movieID int, language string) (string, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if language != "" {
		params.Set("language", language)
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/movie/%d?%s", c.baseURL, movieID, params.Encode()))
	if err != nil {
		return "", err
	}

	var payload struct {
		Overview string `json:"overview"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode movie detail: %w", err)
	}
	return payload.Overview, nil
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
			return fmt.Errorf("media API responded %d", resp.StatusCode)
		default:
			return retry.Permanent(fmt.Errorf("media API responded %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

func parseYear(release string) int {
	if len(release) < 4 {
		return 0
	}
	y, err := strconv.Atoi(release[:4])
	if err != nil {
		return 0
	}
	return y
}

// GenreIDsFor maps the quiz's movie genres to the API's numeric ids.
var GenreIDsFor = map[string][]int{
	"adventure":   {12, 28},
	"drama":       {18},
	"scifi":       {878},
	"documentary": {99},
	"comedy":      {35},
}
