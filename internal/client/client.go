// Package client is the adapter between the console and the upstream
// school API. It owns the HTTP transport and the translation of raw
// failures into the console error taxonomy; nothing else in the module
// issues upstream requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/pkg/config"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
)

// Client wraps HTTP access to the school API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	observe func(method, path string, status int, d time.Duration)
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithObserver registers a callback invoked after every upstream call.
func WithObserver(fn func(method, path string, status int, d time.Duration)) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

// New builds a client for the configured school API.
func New(cfg config.SchoolAPIConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Students returns the student operation set.
func (c *Client) Students() *StudentClient {
	return &StudentClient{c}
}

// Courses returns the course operation set.
func (c *Client) Courses() *CourseClient {
	return &CourseClient{c}
}

// Enrollments returns the enrollment operation set.
func (c *Client) Enrollments() *EnrollmentClient {
	return &EnrollmentClient{c}
}

// do performs one JSON round trip. A nil out discards the body. Errors
// are always *appErrors.Error: NETWORK_ERROR when no response arrived,
// NOT_FOUND on 404, VALIDATION_ERROR on other 4xx, UPSTREAM_ERROR on 5xx.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.report(method, path, 0, duration)
		c.logger.Warn("school_api_unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, appErrors.ErrNetwork.Message)
	}
	defer resp.Body.Close()
	c.report(method, path, resp.StatusCode, duration)

	if resp.StatusCode >= 400 {
		return c.statusError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode school api response")
	}
	return nil
}

func (c *Client) statusError(method, path string, resp *http.Response) error {
	detail := upstreamDetail(resp.Body)
	err := fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, detail)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, appErrors.ErrNotFound.Message)
	case resp.StatusCode >= 500:
		c.logger.Error("school_api_error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
}

func (c *Client) report(method, path string, status int, d time.Duration) {
	if c.observe != nil {
		c.observe(method, path, status, d)
	}
}

// upstreamDetail extracts FastAPI's {"detail": "..."} body when present.
func upstreamDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return string(raw)
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
