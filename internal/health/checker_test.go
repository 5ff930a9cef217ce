package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"api":"mapbox"}`))
	}))
	defer srv.Close()

	if err := NewChecker(time.Second).Check(context.Background(), srv.URL); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestCheckErrorStatusIsStillReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	// Any HTTP response means the endpoint answered.
	if err := NewChecker(time.Second).Check(context.Background(), srv.URL); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestCheckUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if err := NewChecker(time.Second).Check(context.Background(), srv.URL); err == nil {
		t.Error("Check succeeded against a closed server")
	}
}
