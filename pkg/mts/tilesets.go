package mts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CreateTilesetRequest is the body for CreateTileset.
type CreateTilesetRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Private     bool            `json:"private"`
	Recipe      json.RawMessage `json:"recipe"`
	Attribution json.RawMessage `json:"attribution,omitempty"`
}

// UpdateTilesetRequest is the body for UpdateTileset. Zero-valued fields are
// omitted from the PATCH.
type UpdateTilesetRequest struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Private     *bool           `json:"private,omitempty"`
	Attribution json.RawMessage `json:"attribution,omitempty"`
}

// ListTilesetsOptions filters ListTilesets.
type ListTilesetsOptions struct {
	Type       string // "vector" or "raster"
	Visibility string // "public" or "private"
	SortBy     string // "created" or "modified"
	Limit      int    // max 500
}

// JobsOptions filters ListJobs.
type JobsOptions struct {
	Stage string // "processing", "queued", "success" or "failed"
	Limit int
}

// CreateTileset registers a new empty tileset under the account, named by
// handle, with the given recipe.
func (c *Client) CreateTileset(ctx context.Context, handle string, req CreateTilesetRequest) (*MessageResponse, error) {
	id, err := c.tilesetID(handle)
	if err != nil {
		return nil, err
	}
	if len(req.Recipe) == 0 {
		return nil, fmt.Errorf("create tileset %s: recipe is required", id)
	}

	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, c.tilesetURL(id, false), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishTileset queues a processing job that builds tiles from the
// tileset's sources according to its recipe.
func (c *Client) PublishTileset(ctx context.Context, handle string) (*PublishResponse, error) {
	id, err := c.tilesetID(handle)
	if err != nil {
		return nil, err
	}

	var out PublishResponse
	if err := c.do(ctx, http.MethodPost, c.tilesetURL(id, true), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTileset changes a tileset's name, description, privacy or
// attribution. Recipes are updated through UpdateRecipe.
func (c *Client) UpdateTileset(ctx context.Context, handle string, req UpdateTilesetRequest) error {
	id, err := c.tilesetID(handle)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, c.tilesetURL(id, false), req, nil, http.StatusNoContent)
}

// DeleteTileset permanently deletes a tileset.
func (c *Client) DeleteTileset(ctx context.Context, handle string) error {
	id, err := c.tilesetID(handle)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, c.tilesetURL(id, false), nil, nil,
		http.StatusOK, http.StatusNoContent)
}

// TilesetStatus reports a tileset's state derived from its most recent job.
func (c *Client) TilesetStatus(ctx context.Context, handle string) (*TilesetStatus, error) {
	jobs, err := c.ListJobs(ctx, handle, JobsOptions{})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("tileset %s.%s has no jobs", c.username, handle)
	}

	latest := jobs[len(jobs)-1]
	return &TilesetStatus{
		ID:        latest.TilesetID,
		LatestJob: latest.ID,
		Status:    latest.Stage,
	}, nil
}

// ListJobs lists a tileset's processing jobs, optionally filtered by stage.
func (c *Client) ListJobs(ctx context.Context, handle string, opts JobsOptions) ([]Job, error) {
	id, err := c.tilesetID(handle)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if err := c.do(ctx, http.MethodGet, c.tilesetJobsURL(id, opts.Stage, opts.Limit), nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches a single processing job.
func (c *Client) GetJob(ctx context.Context, handle, jobID string) (*Job, error) {
	id, err := c.tilesetID(handle)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := c.do(ctx, http.MethodGet, c.tilesetJobURL(id, jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListTilesets lists the account's tilesets.
func (c *Client) ListTilesets(ctx context.Context, opts ListTilesetsOptions) ([]Tileset, error) {
	var tilesets []Tileset
	if err := c.do(ctx, http.MethodGet, c.tilesetListURL(opts), nil, &tilesets); err != nil {
		return nil, err
	}
	return tilesets, nil
}

// TileJSON fetches the TileJSON document for one or more tileset handles.
// With secure set, tile URLs in the document use HTTPS.
func (c *Client) TileJSON(ctx context.Context, handles []string, secure bool) (*TileJSON, error) {
	if len(handles) == 0 {
		return nil, fmt.Errorf("tilejson: at least one tileset handle is required")
	}

	u, err := c.tileJSONURL(handles, secure)
	if err != nil {
		return nil, err
	}

	var tj TileJSON
	if err := c.do(ctx, http.MethodGet, u, nil, &tj); err != nil {
		return nil, err
	}
	return &tj, nil
}

// ValidateRecipe submits a recipe document for server-side validation
// without attaching it to a tileset.
func (c *Client) ValidateRecipe(ctx context.Context, recipe json.RawMessage) (*RecipeValidation, error) {
	var out RecipeValidation
	if err := c.do(ctx, http.MethodPut, c.validateRecipeURL(), recipe, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recipe fetches a tileset's recipe document.
func (c *Client) Recipe(ctx context.Context, handle string) (json.RawMessage, error) {
	id, err := c.tilesetID(handle)
	if err != nil {
		return nil, err
	}

	var recipe json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.recipeURL(id), nil, &recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe replaces a tileset's recipe. The new recipe applies to the
// next publish.
func (c *Client) UpdateRecipe(ctx context.Context, handle string, recipe json.RawMessage) error {
	id, err := c.tilesetID(handle)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, c.recipeURL(id), recipe, nil,
		http.StatusCreated, http.StatusNoContent)
}
