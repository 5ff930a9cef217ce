package mts

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// RetryConfig holds retry configuration for idempotent API requests.
type RetryConfig struct {
	MaxAttempts  int           // Max attempts including the first (default: 3)
	InitialDelay time.Duration // Delay before the first retry (default: 1s)
	MaxDelay     time.Duration // Cap on the backoff delay (default: 4s)
}

// DefaultRetryConfig returns the default retry configuration: three attempts
// with exponential backoff of 1s, 2s, 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     4 * time.Second,
	}
}

// doWithRetry executes an HTTP request, retrying on network timeouts, 5xx
// responses and 429. Requests with a body are only retried when the body is
// replayable via req.GetBody, which net/http sets for in-memory readers.
// When the attempts are exhausted on a retriable status the last response is
// returned unconsumed, so the caller can report the Mapbox error body.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, cfg RetryConfig) (*http.Response, error) {
	if cfg.MaxAttempts == 0 {
		cfg = DefaultRetryConfig()
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		attemptReq := req
		if attempt > 0 {
			attemptReq = req.Clone(ctx)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				attemptReq.Body = body
			}
		}

		resp, err := client.Do(attemptReq)
		if err == nil && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if err != nil {
			if !isRetriableError(err) {
				return nil, err
			}
			lastErr = err
			// A consumed non-replayable body cannot be resent.
			if req.Body != nil && req.GetBody == nil {
				return nil, fmt.Errorf("transient failure on non-replayable request: %w", lastErr)
			}
		} else {
			// No retry will follow: hand the response back so the caller
			// can surface the Mapbox error body.
			if attempt == cfg.MaxAttempts-1 || (req.Body != nil && req.GetBody == nil) {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		}

		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				delay = min(delay*2, cfg.MaxDelay)
			}
		}
	}

	return nil, fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

func isRetriableError(err error) bool {
	if netErr, ok := err.(net.Error); ok {
		return netErr.Timeout()
	}
	return false
}
