package mts

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadSourceOptions controls UploadSource.
type UploadSourceOptions struct {
	// Replace swaps the whole source instead of appending to it (PUT
	// instead of POST).
	Replace bool
	// SkipValidation bypasses per-feature validation, useful when re-running
	// an upload whose features already passed.
	SkipValidation bool
}

// UploadSource streams the GeoJSON features from the given files to the
// account's source storage as line-delimited GeoJSON. The upload is a
// single streaming multipart request and is never retried.
func (c *Client) UploadSource(ctx context.Context, srcID string, paths []string, opts UploadSourceOptions) (*Source, error) {
	if !ValidSourceID(srcID) {
		return nil, &InvalidIDError{Kind: "source", ID: srcID}
	}
	if err := c.checkTokenUsername(); err != nil {
		return nil, err
	}

	method := http.MethodPost
	if opts.Replace {
		method = http.MethodPut
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", "file")
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := writeNDJSON(part, paths, !opts.SkipValidation); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	u := c.sourceURL(srcID)
	req, err := http.NewRequestWithContext(ctx, method, u, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", redactToken(u)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("source upload")

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, method, u)
	}

	var src Source
	if err := decodeJSON(resp.Body, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// GetSource fetches metadata for an uploaded source.
func (c *Client) GetSource(ctx context.Context, srcID string) (*Source, error) {
	if !ValidSourceID(srcID) {
		return nil, &InvalidIDError{Kind: "source", ID: srcID}
	}

	var src Source
	if err := c.do(ctx, http.MethodGet, c.sourceURL(srcID), nil, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// DeleteSource permanently deletes an uploaded source and all its files.
func (c *Client) DeleteSource(ctx context.Context, srcID string) error {
	if !ValidSourceID(srcID) {
		return &InvalidIDError{Kind: "source", ID: srcID}
	}
	return c.do(ctx, http.MethodDelete, c.sourceURL(srcID), nil, nil, http.StatusNoContent)
}

// ListSources lists the account's uploaded sources.
func (c *Client) ListSources(ctx context.Context) ([]Source, error) {
	var sources []Source
	if err := c.do(ctx, http.MethodGet, c.sourceListURL(), nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}
