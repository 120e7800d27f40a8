// Package client talks to the analysis and relay services over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"jobrec/internal/model"
)

// AnalyzeResult mirrors the analyze_resume response.
type AnalyzeResult struct {
	Filename   string   `json:"filename"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Status     string   `json:"status"`
}

// Latest is the get_latest_jobs response. Message is set instead of Jobs
// when nothing has been received yet.
type Latest struct {
	Jobs    []model.JobPosting `json:"jobs"`
	Message string             `json:"message,omitempty"`
}

// APIError is a non-200 reply from either service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Client calls the analysis service at mcpURL and the relay service at
// backendURL.
type Client struct {
	mcpURL     string
	backendURL string
	http       *http.Client
}

// New returns a Client. Trailing slashes on the base URLs are ignored.
func New(mcpURL, backendURL string, timeout time.Duration) *Client {
	return &Client{
		mcpURL:     strings.TrimRight(mcpURL, "/"),
		backendURL: strings.TrimRight(backendURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// AnalyzeResume uploads a resume for analysis. email may be empty, in which
// case the service uses its configured default.
func (c *Client) AnalyzeResume(ctx context.Context, filename string, r io.Reader, email string) (*AnalyzeResult, error) {
	fields := map[string]string{}
	if email != "" {
		fields["email"] = email
	}

	var res AnalyzeResult
	if err := c.postFile(ctx, c.mcpURL+"/analyze_resume", filename, r, fields, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UploadResume hands a resume to the relay service and returns its message.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.postFile(ctx, c.backendURL+"/upload_resume", filename, r, nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

// LatestJobs fetches the most recent batch pushed by the workflow.
func (c *Client) LatestJobs(ctx context.Context) (*Latest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.backendURL+"/get_latest_jobs", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var res Latest
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) postFile(ctx context.Context, url, filename string, r io.Reader, fields map[string]string, out any) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
		return &APIError{StatusCode: status, Code: env.Error.Code, Message: env.Error.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
}
