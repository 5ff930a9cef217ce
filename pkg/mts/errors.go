package mts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrNoToken is returned when no access token is configured. Set the
// MAPBOX_ACCESS_TOKEN environment variable or pass the token explicitly.
var ErrNoToken = errors.New("no access token provided")

// ErrNoUsername is returned when no account username is configured. Set the
// MAPBOX_USER_NAME environment variable or pass the username explicitly.
var ErrNoUsername = errors.New("no username provided")

// APIError is a non-success response from the Mapbox API. The Mapbox error
// body is carried unmodified so callers can inspect the service's own error
// taxonomy.
type APIError struct {
	StatusCode int
	Message    string // Mapbox "message" field, when present
	Body       string // raw response body
	Method     string
	URL        string // access token redacted
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	return fmt.Sprintf("mapbox api: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, detail)
}

// IsUnauthorized reports whether the request was rejected for authentication
// or authorization reasons.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the requested resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether the request hit the Mapbox rate limit.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// InvalidIDError reports a tileset handle, tileset ID or source ID that does
// not meet Mapbox's identifier rules.
type InvalidIDError struct {
	Kind string // "tileset" or "source"
	ID   string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s ID %q: max 32 chars per segment, only alphanumerics, %q and %q allowed",
		e.Kind, e.ID, "-", "_")
}

const maxErrorBody = 64 << 10

func newAPIError(resp *http.Response, method, rawURL string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		Body:       string(body),
		Method:     method,
		URL:        redactToken(rawURL),
	}
}

// redactToken masks the access_token query parameter in a URL for logs and
// error messages.
func redactToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", "redacted")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
