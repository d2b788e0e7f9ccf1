// Package transport performs the HTTP exchanges with the remote property API:
// JSON encoding, common headers, request ids, authentication and logging.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = 30 * time.Second

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	baseURL string
	auth    Authenticator
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAuth decorates every request with auth. nil disables it.
func WithAuth(auth Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a transport client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Do sends one request. body, when non-nil, is encoded as JSON. The caller
// owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+path, err)
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.apply(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	event := c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("Request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("Request completed")
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}
