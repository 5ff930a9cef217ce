package mts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// ActivityOptions filters ListActivity.
type ActivityOptions struct {
	SortBy  string // "requests" (default) or "modified"
	OrderBy string // "desc" (default) or "asc"
	Limit   int
	Start   string // pagination key from a previous page's Next
}

var linkURLPattern = regexp.MustCompile(`<([^>]+)>`)

// ListActivity fetches one page of the account's tileset activity report.
// The returned Next key, parsed from the response Link header, fetches the
// following page when passed back via ActivityOptions.Start.
func (c *Client) ListActivity(ctx context.Context, opts ActivityOptions) (*ActivityPage, error) {
	u := c.activityURL(opts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := doWithRetry(ctx, c.httpClient, req, c.retryCfg)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", redactToken(u), err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", http.MethodGet).
		Str("url", redactToken(u)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("mapbox api request")

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, http.MethodGet, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var entries []ActivityEntry
	if err := decodeJSON(bytes.NewReader(body), &entries); err != nil {
		return nil, err
	}

	return &ActivityPage{
		Entries: entries,
		Next:    nextStartKey(resp.Header.Get("Link")),
	}, nil
}

// nextStartKey extracts the "start" pagination key from a Link header of
// the form <https://api.mapbox.com/activity/v1/...?start=KEY>; rel="next".
func nextStartKey(link string) string {
	m := linkURLPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	u, err := url.Parse(m[1])
	if err != nil {
		return ""
	}
	return u.Query().Get("start")
}
