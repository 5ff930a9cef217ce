package mts

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestRedactToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			"https://api.mapbox.com/tilesets/v1/user?access_token=sk.secret",
			"https://api.mapbox.com/tilesets/v1/user?access_token=redacted",
		},
		{
			"https://api.mapbox.com/tilesets/v1/user?access_token=sk.secret&limit=5",
			"https://api.mapbox.com/tilesets/v1/user?access_token=redacted&limit=5",
		},
		{
			"https://api.mapbox.com/ping",
			"https://api.mapbox.com/ping",
		},
	}

	for _, tc := range cases {
		if got := redactToken(tc.in); got != tc.want {
			t.Errorf("redactToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewAPIError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusUnauthorized,
		Body:       io.NopCloser(strings.NewReader(`{"message":"Not Authorized - Invalid Token"}`)),
	}

	err := newAPIError(resp, http.MethodGet, "https://api.mapbox.com/tilesets/v1/user?access_token=sk.secret")
	if err.Message != "Not Authorized - Invalid Token" {
		t.Errorf("message = %q", err.Message)
	}
	if !err.IsUnauthorized() {
		t.Error("401 not reported as unauthorized")
	}
	if strings.Contains(err.URL, "sk.secret") {
		t.Errorf("URL %q leaks the token", err.URL)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("Error() = %q, want status in message", err.Error())
	}
}

func TestNewAPIErrorNonJSONBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader("upstream timeout")),
	}

	err := newAPIError(resp, http.MethodGet, "https://api.mapbox.com/x")
	if err.Message != "" {
		t.Errorf("message = %q, want empty", err.Message)
	}
	if !strings.Contains(err.Error(), "upstream timeout") {
		t.Errorf("Error() = %q, want raw body fallback", err.Error())
	}
}

func TestAPIErrorPredicates(t *testing.T) {
	cases := []struct {
		status      int
		unauthorized, notFound, rateLimited bool
	}{
		{http.StatusUnauthorized, true, false, false},
		{http.StatusForbidden, true, false, false},
		{http.StatusNotFound, false, true, false},
		{http.StatusTooManyRequests, false, false, true},
		{http.StatusInternalServerError, false, false, false},
	}

	for _, tc := range cases {
		e := &APIError{StatusCode: tc.status}
		if e.IsUnauthorized() != tc.unauthorized {
			t.Errorf("IsUnauthorized(%d) = %v", tc.status, e.IsUnauthorized())
		}
		if e.IsNotFound() != tc.notFound {
			t.Errorf("IsNotFound(%d) = %v", tc.status, e.IsNotFound())
		}
		if e.IsRateLimited() != tc.rateLimited {
			t.Errorf("IsRateLimited(%d) = %v", tc.status, e.IsRateLimited())
		}
	}
}

func TestInvalidIDError(t *testing.T) {
	e := &InvalidIDError{Kind: "source", ID: "bad id"}
	msg := e.Error()
	if !strings.Contains(msg, "source") || !strings.Contains(msg, "bad id") {
		t.Errorf("Error() = %q, want kind and ID", msg)
	}
}
