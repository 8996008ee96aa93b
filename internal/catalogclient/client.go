// Package catalogclient reads product records from a remote catalog read
// endpoint, normalizing legacy payload shapes so no malformed record can
// fail a scan.
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/kamenart/catalog-service/internal/catalog"
)

// Config controls request pacing and retries.
type Config struct {
	RequestsPerSecond float64
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	Timeout           time.Duration
}

// DefaultConfig returns conservative pacing suitable for scanning another
// instance's internal API.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
		Timeout:           30 * time.Second,
	}
}

// FetchError reports an exhausted retry loop.
type FetchError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastErr    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s after %d attempts", e.URL, e.Attempts)
	if e.LastStatus != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.LastStatus)
	}
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.LastErr }

// Client fetches catalog records over HTTP with rate limiting and retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	config     Config
	logger     *zerolog.Logger
}

// New creates a client for the catalog API rooted at baseURL.
func New(baseURL, apiKey string, cfg Config, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		config:     cfg,
		logger:     logger,
	}
}

// retryableStatus reports whether an HTTP status is worth another attempt.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}

// backoff computes the delay before the next attempt: exponential with
// 0-25% jitter, capped.
func (c *Client) backoff(attempt int) time.Duration {
	d := float64(c.config.InitialBackoff) * math.Pow(2, float64(attempt))
	d = math.Min(d, float64(c.config.MaxBackoff))
	return time.Duration(d * (1 + 0.25*rand.Float64()))
}

// getBytes performs a rate-limited GET with retries and returns the body.
func (c *Client) getBytes(ctx context.Context, url string) ([]byte, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "kamenart-catalog-service/1.0")
		if c.apiKey != "" {
			req.Header.Set("X-Internal-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Debug().Err(err).Str("url", url).Int("attempt", attempt+1).Msg("Catalog fetch failed, will retry")
			continue
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}
			return body, nil
		}

		resp.Body.Close()
		if !retryableStatus(resp.StatusCode) {
			break
		}
	}

	return nil, &FetchError{URL: url, Attempts: c.config.MaxRetries + 1, LastStatus: lastStatus, LastErr: lastErr}
}

// wireProduct mirrors the read endpoint's record shape. Variants may arrive
// as an array or as a JSON-encoded string; RawMessage defers that decision
// to the defensive decoder.
type wireProduct struct {
	ID              int64           `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           *float64        `json:"price"`
	OldPrice        *float64        `json:"oldPrice"`
	DiscountPercent *float64        `json:"discountPercent"`
	Hit             bool            `json:"hit"`
	Popular         bool            `json:"popular"`
	Description     string          `json:"description"`
	Variants        json.RawMessage `json:"variants"`
}

type categoryResponse struct {
	Products []wireProduct `json:"products"`
	Total    int           `json:"total"`
}

// FetchCategory returns all products of one category, normalized.
func (c *Client) FetchCategory(ctx context.Context, cat catalog.Category) ([]catalog.Product, error) {
	url := fmt.Sprintf("%s/internal/catalog/%s", c.baseURL, cat)
	body, err := c.getBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp categoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode category %s: %w", cat, err)
	}

	products := make([]catalog.Product, 0, len(resp.Products))
	for _, w := range resp.Products {
		products = append(products, catalog.Product{
			ID:              w.ID,
			Slug:            w.Slug,
			Name:            w.Name,
			Category:        catalog.Category(w.Category),
			Price:           w.Price,
			OldPrice:        w.OldPrice,
			DiscountPercent: w.DiscountPercent,
			Hit:             w.Hit,
			Popular:         w.Popular,
			Description:     w.Description,
			Variants:        catalog.DecodeVariants(w.Variants),
		})
	}
	return products, nil
}

// Categories implements uniqueness.CategorySource.
func (c *Client) Categories() []catalog.Category {
	return catalog.Categories()
}

// ProductsByCategory implements uniqueness.CategorySource over the remote
// read endpoint.
func (c *Client) ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	products, err := c.FetchCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	refs := make([]catalog.ProductRef, 0, len(products))
	for _, p := range products {
		refs = append(refs, catalog.ProductRef{ID: p.ID, Name: p.Name})
	}
	return refs, nil
}
