package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the Telegraph API endpoint.
	DefaultBaseURL = "https://api.telegra.ph"

	// DefaultTimeout for API requests.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the service.
	DefaultUserAgent = "telegraph-mcp-server/1.0 (github.com/telegraph-tools/telegraph-mcp-server)"
)

// Client provides access to the Telegraph API. It holds the access token and
// the shared HTTP transport for its whole lifetime; both are released
// together by Close. A single Client is safe for concurrent use: operations
// only read the token and issue requests, so no locking is involved.
//
// The client performs no retries, no backoff and no caching. Every failure
// surfaces to the caller as one of *ValidationError, *TransportError,
// *APIError or *DecodeError.
type Client struct {
	baseURL     string
	accessToken string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger

	closeOnce sync.Once
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient adopts an existing HTTP client instead of building one.
// The Client still owns its teardown: Close releases idle connections.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout on the owned HTTP client. It has
// no effect when combined with WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Telegraph API client. An empty access token is allowed
// and sufficient for createAccount and getPage calls.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		accessToken: accessToken,
		userAgent:   DefaultUserAgent,
		httpClient:  newHTTPClient(DefaultTimeout),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccessToken returns the token the client was constructed with. The client
// never mutates it; createAccount and revokeAccessToken return the new token
// in the Account record for the caller to act on.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// Close releases the transport's idle connections. It runs exactly once and
// is safe to call from any exit path, including after cancellation of
// in-flight requests.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
	})
}

// envelope is the reply wrapper every Telegraph API response uses.
type envelope struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

// invoke performs one API call: POST <base>/<method> with params as a JSON
// body, then branches on the ok flag before handing the result back.
// The context is the only suspension/cancellation point; cancelling aborts
// the in-flight HTTP request without leaking the transport.
func (c *Client) invoke(ctx context.Context, method string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode parameters: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Telegraph API request failed", "method", method, "error", err)
		return nil, &TransportError{Method: method, Err: err}
	}

	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{
			Type:    "envelope",
			Message: fmt.Sprintf("%s: reply is not valid JSON (HTTP %d)", method, resp.StatusCode),
		}
	}
	if !env.OK {
		c.logger.Debug("Telegraph API returned error", "method", method, "error", env.Error)
		return nil, &APIError{Method: method, Message: env.Error}
	}

	c.logger.Debug("Telegraph API call completed",
		"method", method,
		"duration", time.Since(start))
	return env.Result, nil
}

// newHTTPClient creates an HTTP client with transport settings tuned for a
// small JSON API.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
