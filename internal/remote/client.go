// Package remote talks to the inspection report storage service through its
// script-compatible /exec endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	endpoint       string
	spreadsheetURL string
	httpClient     *http.Client
	backoffs       []time.Duration
	logger         *zap.Logger

	submitting atomic.Bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithBackoffs replaces the waits between list retries.
func WithBackoffs(b ...time.Duration) Option {
	return func(c *Client) { c.backoffs = b }
}

// NewClient returns a client for endpoint. spreadsheetURL is the generic
// link offered when a submission's own document is unknown.
func NewClient(endpoint, spreadsheetURL string, opts ...Option) *Client {
	c := &Client{
		endpoint:       endpoint,
		spreadsheetURL: spreadsheetURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoffs: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SpreadsheetURL() string {
	return c.spreadsheetURL
}

// RetryWithBackoff runs fn up to maxRetries times, sleeping between
// attempts. It stops early when ctx is done.
func (c *Client) RetryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if i == maxRetries-1 || i >= len(c.backoffs) {
			continue
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(c.backoffs[i]):
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

func (c *Client) queryURL(params url.Values) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// getJSON issues a GET with params and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op string, params url.Values, out any) error {
	target, err := c.queryURL(params)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	return c.do(req, op, out)
}

// postJSON sends body as JSON and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, op string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(body)}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: status %d, body: %s", resp.StatusCode, truncate(body))}
	}
	return nil
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
