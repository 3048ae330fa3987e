// Package http wraps the HTTP transport used to talk to Azure DevOps: basic
// authentication, JSON encoding, retries for transient failures, and optional
// debug logging. It implements azdo.Session.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// DefaultBaseURL is the Azure DevOps service root; the organization name is
// appended at construction.
const DefaultBaseURL = "https://dev.azure.com"

// Client is an authenticated session against one organization.
type Client struct {
	baseURL    string
	username   string
	token      string
	userAgent  string
	debug      bool
	logger     azdo.Logger
	httpClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger azdo.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures retry behavior for transient transport failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds each individual request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a session authenticated with basic auth (username +
// personal access token) rooted at baseURL.
func NewClient(baseURL, username, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		username:   username,
		token:      token,
		userAgent:  "azdo-client/1.0",
		logger:     azdo.NopLogger(),
		httpClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get implements azdo.Session.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*azdo.HTTPResponse, error) {
	target := c.resolve(rawURL)
	if len(query) > 0 {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}

		target += separator + query.Encode()
	}

	return c.do(ctx, http.MethodGet, target, nil)
}

// Post implements azdo.Session.
func (c *Client) Post(ctx context.Context, rawURL string, body interface{}) (*azdo.HTTPResponse, error) {
	return c.do(ctx, http.MethodPost, c.resolve(rawURL), body)
}

// Put implements azdo.Session.
func (c *Client) Put(ctx context.Context, rawURL string, body interface{}) (*azdo.HTTPResponse, error) {
	return c.do(ctx, http.MethodPut, c.resolve(rawURL), body)
}

// Patch implements azdo.Session.
func (c *Client) Patch(ctx context.Context, rawURL string, body interface{}) (*azdo.HTTPResponse, error) {
	return c.do(ctx, http.MethodPatch, c.resolve(rawURL), body)
}

// Delete implements azdo.Session.
func (c *Client) Delete(ctx context.Context, rawURL string) (*azdo.HTTPResponse, error) {
	return c.do(ctx, http.MethodDelete, c.resolve(rawURL), nil)
}

// resolve joins a bare path onto the session's base URL. Fully-qualified URLs
// pass through, which lets callers follow absolute links an API response
// supplies (the audit and search services live on sibling hosts).
func (c *Client) resolve(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}

	return c.baseURL + rawURL
}

func (c *Client) do(ctx context.Context, method, target string, body interface{}) (*azdo.HTTPResponse, error) {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		c.logger.Debug("request", map[string]interface{}{"method": method, "url": target})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug {
		c.logger.Debug("response", map[string]interface{}{
			"method": method,
			"url":    target,
			"status": resp.StatusCode,
		})
	}

	return &azdo.HTTPResponse{StatusCode: resp.StatusCode, Body: responseBody}, nil
}
