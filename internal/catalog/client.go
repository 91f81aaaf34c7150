// Package catalog fetches media listings and details from the upstream
// content provider and caches the raw responses.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

// UpstreamError is returned when the provider answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Path       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog: upstream %s returned %d", e.Path, e.StatusCode)
}

// Client talks to a TMDB-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	ttl        time.Duration
	logger     *zap.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Cache      Cache
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient builds a catalog client. A nil cache or zero TTL disables caching.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		cache:      opts.Cache,
		ttl:        opts.CacheTTL,
		logger:     logger,
	}
}

// List returns a category listing such as popular or top_rated.
func (c *Client) List(ctx context.Context, mediaType, category string, page int) (json.RawMessage, error) {
	return c.get(ctx, "/"+url.PathEscape(mediaType)+"/"+url.PathEscape(category), pageParams(page))
}

// Genres returns the genre list for a media type.
func (c *Client) Genres(ctx context.Context, mediaType string) (json.RawMessage, error) {
	return c.get(ctx, "/genre/"+url.PathEscape(mediaType)+"/list", nil)
}

// Search runs a title search. The "people" type searches persons.
func (c *Client) Search(ctx context.Context, mediaType, query string, page int) (json.RawMessage, error) {
	params := pageParams(page)
	params.Set("query", query)
	if mediaType == "people" {
		mediaType = "person"
	}
	return c.get(ctx, "/search/"+url.PathEscape(mediaType), params)
}

// Person returns a person's profile.
func (c *Client) Person(ctx context.Context, personID string) (json.RawMessage, error) {
	return c.get(ctx, "/person/"+url.PathEscape(personID), nil)
}

// PersonMedias returns the movie and tv credits of a person.
func (c *Client) PersonMedias(ctx context.Context, personID string) (json.RawMessage, error) {
	return c.get(ctx, "/person/"+url.PathEscape(personID)+"/combined_credits", nil)
}

// Detail returns a title with credits, videos, recommendations and images.
func (c *Client) Detail(ctx context.Context, mediaType, mediaID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,recommendations,images")
	return c.get(ctx, "/"+url.PathEscape(mediaType)+"/"+url.PathEscape(mediaID), params)
}

func pageParams(page int) url.Values {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	// Encode sorts by key, so identical requests share a cache entry.
	key := path + "?" + params.Encode()

	if c.cache != nil && c.ttl > 0 {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return json.RawMessage(cached), nil
		}
	}

	body, err := c.fetch(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && c.ttl > 0 {
		if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
			c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return json.RawMessage(body), nil
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Path: path}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("catalog: %s returned invalid json", path)
	}
	return body, nil
}
