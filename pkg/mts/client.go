// Package mts provides the API client for the Mapbox Tiling Service.
//
// Purpose:
//
//	REST client implementation for the Mapbox Tilesets, Styles and Activity
//	HTTP APIs. Handles authentication, request/response formatting, and error
//	handling with retry logic. Mirrors the operation set of the Mapbox
//	tilesets-cli: source upload, tileset lifecycle, recipe management, job
//	inspection, style CRUD, activity reports and area estimation.
//
// Dependencies:
//   - net/http: HTTP client
//   - github.com/paulmach/orb: GeoJSON model and tile math
//   - github.com/rs/zerolog: request-level debug logging
package mts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Version is the client library version reported in the User-Agent header.
const Version = "0.3.0"

// DefaultBaseURL is the Mapbox API root.
const DefaultBaseURL = "https://api.mapbox.com"

const defaultUserAgent = "mts-go/" + Version

// Client provides access to the Mapbox Tiling Service APIs. A Client is safe
// for concurrent use; it holds no mutable state beyond the embedded
// http.Client.
type Client struct {
	baseURL    string
	username   string
	token      string
	userAgent  string
	httpClient *http.Client
	retryCfg   RetryConfig
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Mapbox API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient supplies a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig overrides the retry behavior for idempotent requests.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// WithLogger attaches a zerolog logger; requests are logged at debug level
// with the access token redacted.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Mapbox API client for the given account username and access
// token. The token is sent as the access_token query parameter on every
// request, per the Mapbox API contract.
func New(username, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if username == "" {
		return nil, ErrNoUsername
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		username:   username,
		token:      token,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retryCfg:   DefaultRetryConfig(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Username returns the account username the client operates on.
func (c *Client) Username() string {
	return c.username
}

// do executes a JSON API request. A non-nil body is marshaled as JSON. When
// out is non-nil the response body is decoded into it. want lists the
// acceptable status codes; when empty any 2xx is accepted. Other statuses
// surface as *APIError carrying the Mapbox error body.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}, want ...int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := doWithRetry(ctx, c.httpClient, req, c.retryCfg)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, redactToken(url), err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", redactToken(url)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("mapbox api request")

	if !statusAccepted(resp.StatusCode, want) {
		return newAPIError(resp, method, url)
	}

	if out != nil {
		return decodeJSON(resp.Body, out)
	}
	return nil
}

func decodeJSON(r io.Reader, out interface{}) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusAccepted(status int, want []int) bool {
	if len(want) == 0 {
		return status >= 200 && status < 300
	}
	for _, w := range want {
		if status == w {
			return true
		}
	}
	return false
}
