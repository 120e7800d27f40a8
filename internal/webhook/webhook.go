// Package webhook posts JSON payloads to the external automation webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes bounds how much of the webhook reply is kept for error messages.
const maxBodyBytes = 64 << 10

// ErrNotConfigured is returned when no webhook URL was provided.
var ErrNotConfigured = errors.New("webhook url is not configured")

// Response is the accepted reply of the webhook.
type Response struct {
	StatusCode int
	Body       string
}

// StatusError reports a webhook reply other than 200 OK.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d: %s", e.StatusCode, e.Body)
}

// Client posts to a single webhook URL. It is safe for concurrent use.
type Client struct {
	url  string
	http *http.Client
}

// New returns a Client with an instrumented transport and the given timeout.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// URL returns the configured webhook URL.
func (c *Client) URL() string { return c.url }

// Post sends payload as JSON. Any status other than 200 is a *StatusError.
func (c *Client) Post(ctx context.Context, payload any) (*Response, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return &Response{StatusCode: resp.StatusCode, Body: string(raw)}, nil
}
