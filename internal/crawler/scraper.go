package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"brandscraper/internal/config"
	"brandscraper/pkg/utils"
)

// ErrResponseTooLarge indicates a body that exceeds the configured limit.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// Response is the outcome of a single GET.
type Response struct {
	Body       []byte
	StatusCode int
	Duration   time.Duration
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Fetcher performs a GET against a URL. A non-nil error means no response
// was received; HTTP error statuses are reported through Response.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Ensure Scraper implements Fetcher.
var _ Fetcher = (*Scraper)(nil)

// Scraper issues plain GET requests with a fixed timeout and headers.
// One Scraper, and so one connection pool, serves the whole run.
type Scraper struct {
	client       *http.Client
	headers      http.Header
	maxBodyBytes int64
}

// NewScraper creates a new scraper with the built-in defaults.
func NewScraper() *Scraper {
	return NewScraperWithConfig(&config.ScraperConfig{
		TimeoutSeconds: config.DefaultTimeoutSeconds,
		UserAgent:      config.DefaultUserAgent,
		MaxResponseKb:  config.DefaultMaxResponseKb,
	})
}

// NewScraperWithConfig creates a new scraper from the scraper settings.
func NewScraperWithConfig(cfg *config.ScraperConfig) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		headers:      utils.BuildHeaders(cfg.UserAgent, nil),
		maxBodyBytes: int64(cfg.MaxResponseKb) * 1024,
	}
}

// Get fetches url once. Transport failures are returned unwrapped so their
// text can be recorded as-is.
func (s *Scraper) Get(ctx context.Context, url string) (*Response, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	// Read one byte past the limit to detect oversized bodies.
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > s.maxBodyBytes {
		return nil, fmt.Errorf("%w: %d KB", ErrResponseTooLarge, s.maxBodyBytes/1024)
	}

	return &Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Duration:   time.Since(startTime),
	}, nil
}
