package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/artic/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond

	// userAgent identifies the client as the API guidelines ask
	userAgent = "artic-tui (https://github.com/mmcdole/artic)"
)

// artworkFields limits responses to what the feed and detail views render
var artworkFields = strings.Join([]string{
	"id", "title", "artist_title", "fiscal_year", "image_id", "thumbnail", "color",
	"date_display", "medium_display", "dimensions", "place_of_origin", "credit_line",
}, ",")

var eventFields = strings.Join([]string{
	"id", "title", "short_description", "location", "image_url", "start_date", "end_date",
}, ",")

// Client implements domain.MuseumRepository for the Art Institute of Chicago API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new collection API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET against the API and returns the body.
// Retries with exponential backoff on 5xx responses.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("AIC-User-Agent", userAgent)

		c.logger.Debug("artic request", "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("artic request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrArtworkNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, domain.ErrRateLimited
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d - %s", resp.StatusCode, string(body))
			c.logger.Warn("artic server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
			)
			continue
		case resp.StatusCode != http.StatusOK:
			c.logger.Error("artic request error", "status", resp.StatusCode, "body", string(body))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("artic request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

// GetEvents returns upcoming events
func (c *Client) GetEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	query := url.Values{}
	query.Set("fields", eventFields)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, "/events", query)
	if err != nil {
		return nil, err
	}

	var resp EventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}
	return MapEvents(resp.Data), nil
}

// GetArtworks returns one page of the artwork feed
func (c *Client) GetArtworks(ctx context.Context, page, limit int) ([]*domain.Artwork, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("fields", artworkFields)
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, "/artworks", query)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	var resp ArtworksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to parse artworks: %w", err)
	}
	return MapArtworks(resp.Data), MapPagination(resp.Pagination), nil
}

// GetArtwork returns a single artwork by id
func (c *Client) GetArtwork(ctx context.Context, id int) (*domain.Artwork, error) {
	query := url.Values{}
	query.Set("fields", artworkFields)

	body, err := c.doRequest(ctx, "/artworks/"+strconv.Itoa(id), query)
	if err != nil {
		return nil, err
	}

	var resp ArtworkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse artwork: %w", err)
	}
	return MapArtwork(resp.Data), nil
}
