// Package health provides an upfront reachability check for the Mapbox API.
//
// Purpose:
//
//	Fail fast with a clear message when api.mapbox.com (or a configured
//	replacement endpoint) is unreachable, before a command starts a
//	multi-step operation such as a source upload followed by a publish.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Checker performs reachability checks against the Mapbox API root.
type Checker struct {
	client  *http.Client
	timeout time.Duration
}

// NewChecker creates a checker with the given per-check timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check issues a GET against the API root. The root answers 200 without
// authentication, so any response at all means the endpoint is reachable;
// only transport failures count as unhealthy.
func (c *Checker) Check(ctx context.Context, endpoint string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mapbox api unreachable at %s: %w", endpoint, err)
	}
	resp.Body.Close()
	return nil
}
