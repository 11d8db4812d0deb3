// Package api is the client for the sermon search API. Calls are rate
// limited, carry a per-request timeout, and retry a fixed number of times
// with a fixed delay before surfacing a fetch failure to the caller.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts per call.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed delay between attempts.
	DefaultRetryDelay = 5 * time.Second

	// RateLimit caps outbound requests per second.
	RateLimit = 5.0
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client is a rate-limited, retrying HTTP client for the sermon search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries sets the attempt count and the fixed delay between attempts.
func WithRetries(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = attempts
		c.retryDelay = delay
	}
}

// WithLogger sets the structured logger used for retry and fetch progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSermons fetches the full current sermon listing.
func (c *Client) ListSermons(ctx context.Context) ([]Sermon, error) {
	var resp sermonListResponse
	if err := c.getJSON(ctx, "/sermons", &resp); err != nil {
		return nil, fmt.Errorf("fetching sermon list: %w", err)
	}
	return resp.Sermons, nil
}

// GetChunks fetches the transcript chunks for one sermon.
func (c *Client) GetChunks(ctx context.Context, videoID string) ([]Chunk, error) {
	var resp chunksResponse
	if err := c.getJSON(ctx, "/sermons/"+url.PathEscape(videoID), &resp); err != nil {
		return nil, fmt.Errorf("fetching chunks for sermon %s: %w", videoID, err)
	}
	return resp.Chunks, nil
}

// BibleStats fetches the overall bible reference statistics document.
func (c *Client) BibleStats(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/bible/stats", &raw); err != nil {
		return nil, fmt.Errorf("fetching bible stats: %w", err)
	}
	return raw, nil
}

// BibleBooks fetches the list of books with reference counts.
func (c *Client) BibleBooks(ctx context.Context) ([]BibleBook, error) {
	var resp bibleBooksResponse
	if err := c.getJSON(ctx, "/bible/books", &resp); err != nil {
		return nil, fmt.Errorf("fetching bible books: %w", err)
	}
	return resp.Books, nil
}

// BookReferences fetches the detailed reference document for one book.
func (c *Client) BookReferences(ctx context.Context, book string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/bible/books/"+url.PathEscape(book), &raw); err != nil {
		return nil, fmt.Errorf("fetching references for %s: %w", book, err)
	}
	return raw, nil
}

// getJSON performs a GET with retries and decodes the response body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	fullURL := c.baseURL + path

	body, err := retry.DoWithData(
		func() ([]byte, error) { return c.doGet(ctx, fullURL) },
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.logger.Warn("request failed, retrying",
				"url", fullURL,
				"attempt", attempt+1,
				"max_attempts", c.maxRetries,
				"error", err)
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", fullURL, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: fullURL}
	}

	return io.ReadAll(resp.Body)
}
