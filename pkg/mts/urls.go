package mts

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// apiURL joins the API root, a path and query parameters, appending the
// access token. Unset parameters must already be filtered by the caller;
// builders below only set non-zero values.
func (c *Client) apiURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.token)
	return c.baseURL + path + "?" + params.Encode()
}

// tilesetID combines the account username with a tileset handle and
// validates the result.
func (c *Client) tilesetID(handle string) (string, error) {
	id := c.username + "." + handle
	if !ValidTilesetID(id) {
		return "", &InvalidIDError{Kind: "tileset", ID: id}
	}
	return id, nil
}

func (c *Client) tilesetURL(id string, publish bool) string {
	if publish {
		return c.apiURL("/tilesets/v1/"+id+"/publish", nil)
	}
	return c.apiURL("/tilesets/v1/"+id, nil)
}

func (c *Client) tilesetJobsURL(id, stage string, limit int) string {
	params := url.Values{}
	if stage != "" {
		params.Set("stage", stage)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return c.apiURL("/tilesets/v1/"+id+"/jobs", params)
}

func (c *Client) tilesetJobURL(id, jobID string) string {
	return c.apiURL("/tilesets/v1/"+id+"/jobs/"+jobID, nil)
}

func (c *Client) tilesetListURL(opts ListTilesetsOptions) string {
	params := url.Values{}
	if opts.Type != "" {
		params.Set("type", opts.Type)
	}
	if opts.Visibility != "" {
		params.Set("visibility", opts.Visibility)
	}
	if opts.SortBy != "" {
		params.Set("sortby", opts.SortBy)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	return c.apiURL("/tilesets/v1/"+c.username, params)
}

func (c *Client) recipeURL(id string) string {
	return c.apiURL("/tilesets/v1/"+id+"/recipe", nil)
}

func (c *Client) validateRecipeURL() string {
	return c.apiURL("/tilesets/v1/validateRecipe", nil)
}

func (c *Client) sourceURL(srcID string) string {
	return c.apiURL("/tilesets/v1/sources/"+c.username+"/"+srcID, nil)
}

func (c *Client) sourceListURL() string {
	return c.apiURL("/tilesets/v1/sources/"+c.username, nil)
}

// tileJSONURL builds the v4 TileJSON endpoint URL for one or more tileset
// handles. The secure flag asks the API to return HTTPS tile URLs.
func (c *Client) tileJSONURL(handles []string, secure bool) (string, error) {
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		id, err := c.tilesetID(h)
		if err != nil {
			return "", err
		}
		ids = append(ids, id)
	}

	u := c.apiURL("/v4/"+strings.Join(ids, ",")+".json", nil)
	if secure {
		u += "&secure"
	}
	return u, nil
}

func (c *Client) activityURL(opts ActivityOptions) string {
	params := url.Values{}
	if opts.SortBy != "" {
		params.Set("sortby", opts.SortBy)
	}
	if opts.OrderBy != "" {
		params.Set("orderby", opts.OrderBy)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Start != "" {
		params.Set("start", opts.Start)
	}
	return c.apiURL(fmt.Sprintf("/activity/v1/%s/tilesets", c.username), params)
}

func (c *Client) stylesListURL(opts ListStylesOptions) string {
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Start != "" {
		params.Set("start", opts.Start)
	}
	path := "/styles/v1/" + c.username
	if opts.Draft {
		path += "/draft"
	}
	return c.apiURL(path, params)
}

func (c *Client) styleURL(styleID string) string {
	return c.apiURL("/styles/v1/"+c.username+"/"+styleID, nil)
}

func (c *Client) stylesCreateURL() string {
	return c.apiURL("/styles/v1/"+c.username, nil)
}
