// Package api is a typed client for the URL shortener backend contract
// under /api/v1. The backend itself is an external service; this package
// only speaks its wire format.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// maxErrorBody bounds how much of a failure payload is read.
const maxErrorBody = 64 << 10

// Client talks to the shortener backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the backend at baseURL, e.g.
// "https://short.example.com". Requests time out after timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ShortURL builds the public short link for a code.
func (c *Client) ShortURL(code string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, code)
}

// DocsURL is the link-out target for the backend's API documentation.
func (c *Client) DocsURL() string {
	return c.baseURL + apiPrefix + "/docs"
}

// HealthURL is the link-out target for the backend's health endpoint.
func (c *Client) HealthURL() string {
	return c.baseURL + apiPrefix + "/health"
}

// Shorten creates a short link. A backend rejection is returned as *Error
// with the server's detail message; transport failures are wrapped.
func (c *Client) Shorten(ctx context.Context, req ShortenRequest) (*ShortenResult, error) {
	var result ShortenResult
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/shorten", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Stats fetches click statistics for a short code.
func (c *Client) Stats(ctx context.Context, code string) (*StatsResult, error) {
	var result StatsResult
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/stats/"+code, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Health fetches the backend's health report.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/health", nil, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// decodeError turns a non-success response into *Error, preserving the
// backend's detail message when one is present.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Detail = resp.Status

		return apiErr
	}

	var failure struct {
		Detail string `json:"detail"`
	}

	if err := json.Unmarshal(payload, &failure); err != nil || failure.Detail == "" {
		c.logger.Debug("backend error without detail payload",
			zap.Int("status", resp.StatusCode),
		)

		apiErr.Detail = resp.Status

		return apiErr
	}

	apiErr.Detail = failure.Detail

	return apiErr
}
