package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
)

// Client reads content records from the WordPress REST API
// ({domain}/wp-json/wp/v2). It is read-only; records are normalized by the
// content package and discarded per request.
type Client struct {
	baseURL  string
	pageSize int
	client   *http.Client
	logger   logger.Logger
}

func NewClient(cfg *config.WordPressConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:  cfg.Domain + "/wp-json/wp/v2",
		pageSize: cfg.PageSize,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log,
	}
}

// get performs a collection GET and decodes the response array.
func (c *Client) get(ctx context.Context, contentType string, query url.Values) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, contentType, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Warn("Content source request failed",
			logger.String("endpoint", endpoint),
			logger.Duration("duration", duration),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Content source returned non-OK status",
			logger.String("endpoint", endpoint),
			logger.Int("status_code", resp.StatusCode),
			logger.Duration("duration", duration),
		)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	c.logger.Debug("Fetched content records",
		logger.String("content_type", contentType),
		logger.Int("count", len(records)),
		logger.Duration("duration", duration),
	)

	return records, nil
}

// GetBySlug fetches the single record with the given slug. Returns
// ErrNotFound when the backend answers with an empty array, which is
// distinct from ErrUnavailable.
func (c *Client) GetBySlug(ctx context.Context, contentType, slug string) (*Record, error) {
	query := url.Values{}
	query.Set("slug", slug)
	query.Set("_embed", "")

	records, err := c.get(ctx, contentType, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, contentType, slug)
	}
	return &records[0], nil
}

// List fetches a single page of records (the backend caps page size; use
// ListAll for unbounded collections).
func (c *Client) List(ctx context.Context, contentType string, perPage int) ([]Record, error) {
	if perPage <= 0 {
		perPage = c.pageSize
	}
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("_embed", "")
	return c.get(ctx, contentType, query)
}

// ListAll pages through a collection at the configured page size until a
// short page is returned, accumulating every record. A single-page fetch
// silently truncates at the backend's per-page cap, so unbounded
// collections (candidatos) must go through here.
func (c *Client) ListAll(ctx context.Context, contentType string) ([]Record, error) {
	var all []Record
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(c.pageSize))
		query.Set("page", strconv.Itoa(page))
		query.Set("_embed", "")

		records, err := c.get(ctx, contentType, query)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if len(records) < c.pageSize {
			return all, nil
		}
	}
}

// ListSlugs fetches only the slugs of a collection, for static-path
// generation in the presentation layer.
func (c *Client) ListSlugs(ctx context.Context, contentType string) ([]string, error) {
	records, err := c.List(ctx, contentType, c.pageSize)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(records))
	for _, r := range records {
		slugs = append(slugs, r.Slug)
	}
	return slugs, nil
}
