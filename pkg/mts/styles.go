package mts

import (
	"context"
	"encoding/json"
	"net/http"
)

// ListStylesOptions filters ListStyles.
type ListStylesOptions struct {
	Draft bool   // list draft styles instead of published ones
	Limit int    // page size
	Start string // pagination key from a previous page
}

// ListStyles lists the account's styles. The Styles API returns summaries
// without sources and layers.
func (c *Client) ListStyles(ctx context.Context, opts ListStylesOptions) ([]Style, error) {
	var styles []Style
	if err := c.do(ctx, http.MethodGet, c.stylesListURL(opts), nil, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

// GetStyle fetches a complete style document.
func (c *Client) GetStyle(ctx context.Context, styleID string) (*Style, error) {
	var style Style
	if err := c.do(ctx, http.MethodGet, c.styleURL(styleID), nil, &style); err != nil {
		return nil, err
	}
	return &style, nil
}

// CreateStyle uploads a new style document. The document must satisfy the
// Mapbox GL style spec; validation happens server side.
func (c *Client) CreateStyle(ctx context.Context, style json.RawMessage) (*Style, error) {
	var created Style
	if err := c.do(ctx, http.MethodPost, c.stylesCreateURL(), style, &created,
		http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStyle replaces an existing style document.
func (c *Client) UpdateStyle(ctx context.Context, styleID string, style json.RawMessage) (*Style, error) {
	var updated Style
	if err := c.do(ctx, http.MethodPatch, c.styleURL(styleID), style, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStyle permanently deletes a style.
func (c *Client) DeleteStyle(ctx context.Context, styleID string) error {
	return c.do(ctx, http.MethodDelete, c.styleURL(styleID), nil, nil,
		http.StatusOK, http.StatusNoContent)
}
