package mts

import "encoding/json"

// Tileset describes a tileset as returned by the Tilesets API.
type Tileset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	Visibility  string    `json:"visibility,omitempty"`
	Status      string    `json:"status,omitempty"`
	Created     string    `json:"created,omitempty"`
	Modified    string    `json:"modified,omitempty"`
	Filesize    int64     `json:"filesize,omitempty"`
	Center      []float64 `json:"center,omitempty"`
}

// Job is a single processing job of a tileset.
type Job struct {
	ID        string            `json:"id"`
	Stage     string            `json:"stage"`
	TilesetID string            `json:"tilesetId"`
	Created   int64             `json:"created,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
	Warnings  []json.RawMessage `json:"warnings,omitempty"`
}

// TilesetStatus summarizes a tileset's state from its most recent job.
type TilesetStatus struct {
	ID        string `json:"id"`
	LatestJob string `json:"latest_job"`
	Status    string `json:"status"`
}

// Source describes an uploaded tileset source.
type Source struct {
	ID       string `json:"id"`
	Files    int    `json:"files,omitempty"`
	Size     int64  `json:"size,omitempty"`
	SizeNice string `json:"size_nice,omitempty"`
}

// TileJSON is the v4 TileJSON document for one or more tilesets.
type TileJSON struct {
	TileJSON     string        `json:"tilejson"`
	Name         string        `json:"name,omitempty"`
	Tiles        []string      `json:"tiles"`
	MinZoom      int           `json:"minzoom"`
	MaxZoom      int           `json:"maxzoom"`
	Bounds       []float64     `json:"bounds,omitempty"`
	Center       []float64     `json:"center,omitempty"`
	Attribution  string        `json:"attribution,omitempty"`
	VectorLayers []VectorLayer `json:"vector_layers,omitempty"`
}

// VectorLayer describes one layer of a vector tileset in a TileJSON
// document.
type VectorLayer struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	MinZoom     int               `json:"minzoom,omitempty"`
	MaxZoom     int               `json:"maxzoom,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// RecipeValidation is the result of validating a recipe document.
type RecipeValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// MessageResponse is the generic confirmation body the Tilesets API returns
// for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// PublishResponse confirms that a publish job was queued.
type PublishResponse struct {
	Message string `json:"message"`
	JobID   string `json:"jobId"`
}

// ActivityEntry is one row of an account activity report.
type ActivityEntry struct {
	ID       string `json:"id"`
	Requests int64  `json:"requests"`
	Modified string `json:"modified,omitempty"`
}

// ActivityPage is a page of activity entries plus the pagination key for the
// next page, parsed from the response Link header.
type ActivityPage struct {
	Entries []ActivityEntry `json:"data"`
	Next    string          `json:"next,omitempty"`
}

// Style is a Mapbox GL style document. Sources and Layers are kept loosely
// typed; their schema belongs to the GL style spec, not this API.
type Style struct {
	Version    int                        `json:"version"`
	ID         string                     `json:"id,omitempty"`
	Name       string                     `json:"name,omitempty"`
	Owner      string                     `json:"owner,omitempty"`
	Created    string                     `json:"created,omitempty"`
	Modified   string                     `json:"modified,omitempty"`
	Visibility string                     `json:"visibility,omitempty"`
	Metadata   map[string]interface{}     `json:"metadata,omitempty"`
	Sources    map[string]json.RawMessage `json:"sources,omitempty"`
	Layers     []json.RawMessage          `json:"layers,omitempty"`
	Sprite     string                     `json:"sprite,omitempty"`
	Glyphs     string                     `json:"glyphs,omitempty"`
	Center     []float64                  `json:"center,omitempty"`
	Zoom       float64                    `json:"zoom,omitempty"`
}
