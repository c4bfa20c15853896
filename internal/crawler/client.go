// Package crawler fetches brand and product payloads from the storefront API.
package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"brandscraper/internal/logger"
	"brandscraper/internal/models"
	"brandscraper/internal/normalizer"
)

// Client errors.
var (
	ErrInvalidJSON       = errors.New("invalid JSON response")
	ErrUnexpectedPayload = errors.New("brand payload is not a JSON object")
)

// Source error texts recorded on degraded brand records.
const (
	invalidJSONMessage = "Invalid JSON response"
	httpStatusFormat   = "HTTP %d"
)

// Client fetches brand details and product statistics through a shared Fetcher.
type Client struct {
	fetcher Fetcher
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a client that fetches through fetcher.
func NewClient(fetcher Fetcher, baseURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// BrandURL returns the brand endpoint for token.
func (c *Client) BrandURL(token string) string {
	return c.baseURL + "/brands/" + url.PathEscape(token)
}

// ProductsURL returns the product list endpoint for token.
func (c *Client) ProductsURL(token string) string {
	return c.BrandURL(token) + "/products"
}

// FetchBrand fetches and normalizes one brand. Transport failures, non-2xx
// statuses and undecodable bodies produce a degraded record, not an error.
// An error is returned only when ctx is done or the body is valid JSON of
// the wrong shape.
func (c *Client) FetchBrand(ctx context.Context, token string) (models.BrandRecord, error) {
	brandURL := c.BrandURL(token)

	c.logger.Debug("Fetching brand", "token", token, "url", brandURL)

	resp, err := c.fetcher.Get(ctx, brandURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.BrandRecord{}, fmt.Errorf("brand fetch aborted: %w", ctxErr)
		}

		c.logger.Warn("Network error while fetching brand", "token", token, "error", err)

		return models.NewDegradedBrand(token, brandURL, err.Error()), nil
	}

	if !resp.OK() {
		c.logger.Warn("Non-success status code while fetching brand", "token", token, "status", resp.StatusCode)

		return models.NewDegradedBrand(token, brandURL, fmt.Sprintf(httpStatusFormat, resp.StatusCode)), nil
	}

	payload, err := decodeJSON(resp.Body)
	if err != nil {
		c.logger.Warn("Brand response is not JSON", "token", token, "error", err)

		return models.NewDegradedBrand(token, brandURL, invalidJSONMessage), nil
	}

	raw, ok := payload.(map[string]any)
	if !ok {
		return models.BrandRecord{}, fmt.Errorf("%w: got %T", ErrUnexpectedPayload, payload)
	}

	return normalizer.NormalizeBrand(token, brandURL, raw), nil
}

// FetchProductStats fetches the product list of a brand and aggregates it.
// Any failure yields an empty aggregate.
func (c *Client) FetchProductStats(ctx context.Context, token string) models.ProductAggregate {
	productsURL := c.ProductsURL(token)

	c.logger.Debug("Fetching products", "token", token, "url", productsURL)

	resp, err := c.fetcher.Get(ctx, productsURL)
	if err != nil {
		c.logger.Warn("Network error while fetching products", "token", token, "error", err)

		return models.ProductAggregate{}
	}

	if !resp.OK() {
		c.logger.Warn("Non-success status code while fetching products", "token", token, "status", resp.StatusCode)

		return models.ProductAggregate{}
	}

	payload, err := decodeJSON(resp.Body)
	if err != nil {
		c.logger.Warn("Products response is not JSON; ignoring", "token", token, "error", err)

		return models.ProductAggregate{}
	}

	return normalizer.Aggregate(payload)
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}

	return v, nil
}
