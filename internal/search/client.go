// Package search talks to the product search backend and turns its replies
// into normalized results.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"productsearch/internal/config"
	"productsearch/internal/logger"
	"productsearch/internal/models"
)

// Backend endpoints relative to the base URL.
const (
	healthPath = "/health"
	searchPath = "/v1/search"
)

// Client errors.
var (
	ErrMissingBaseURL   = errors.New("search backend base URL is not configured")
	ErrEmptyQuery       = errors.New("search query is empty")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecodeResponse   = errors.New("failed to decode backend response")
)

// Client performs single requests against the backend. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	maxBody    int64
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for the backend described by cfg.
func NewClient(cfg config.BackendConfig, log *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrMissingBaseURL
	}

	if log == nil {
		log = logger.Discard()
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	maxBody := cfg.MaxResponseBytes()
	if maxBody <= 0 {
		maxBody = 4 << 20
	}

	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		maxBody:    maxBody,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "search-client"),
	}, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches the backend health document.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	body, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}

	var out models.HealthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return out, nil
}

// Ping reports whether the health endpoint answers with a 2xx status and a
// JSON document, which is logged at debug level.
func (c *Client) Ping(ctx context.Context) error {
	doc, err := c.Health(ctx)
	if err != nil {
		return err
	}

	c.log.Debug("backend health", "response", doc)

	return nil
}

// Search posts the trimmed query and decodes the response envelope.
// A missing or null products array decodes as an empty slice.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	message := strings.TrimSpace(query)
	if message == "" {
		return nil, ErrEmptyQuery
	}

	payload, err := json.Marshal(models.SearchRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, searchPath, payload)
	if err != nil {
		return nil, err
	}

	var out models.SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	if out.Products == nil {
		out.Products = []models.RawProduct{}
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, snippet(body))
	}

	return body, nil
}

// snippet shortens an error body for messages.
func snippet(body []byte) string {
	const maxLen = 200

	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}

	return s
}
