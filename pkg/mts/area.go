package mts

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"
)

// Precision levels accepted by EstimateArea. Each maps to the zoom level
// Mapbox bills tileset processing at.
const (
	Precision10m  = "10m"
	Precision1m   = "1m"
	Precision30cm = "30cm"
	Precision1cm  = "1cm"
)

// PricingDocsURL points at Mapbox's tileset pricing documentation,
// referenced by area estimates.
const PricingDocsURL = "https://www.mapbox.com/pricing/#tilesets"

// AreaEstimate is the result of EstimateArea. KM2 is a decimal string for
// parity with the tilesets-cli output.
type AreaEstimate struct {
	KM2         string `json:"km2"`
	Precision   string `json:"precision"`
	PricingDocs string `json:"pricing_docs"`
}

// EstimateAreaOptions controls EstimateArea.
type EstimateAreaOptions struct {
	Precision string
	// Force1cm acknowledges that 1cm precision must be enabled for the
	// account by Mapbox support.
	Force1cm bool
	// SkipValidation bypasses per-feature validation.
	SkipValidation bool
}

func precisionZoom(precision string) (maptile.Zoom, error) {
	switch precision {
	case Precision10m:
		return 6, nil
	case Precision1m:
		return 11, nil
	case Precision30cm:
		return 14, nil
	case Precision1cm:
		return 17, nil
	}
	return 0, fmt.Errorf("unknown precision %q (want 10m, 1m, 30cm or 1cm)", precision)
}

// EstimateArea estimates the billable area of a tileset built from the
// given features: the features are covered with map tiles at the zoom level
// implied by the precision, the cover is deduplicated across features, and
// the tiles' spherical areas are summed.
func EstimateArea(features []*geojson.Feature, opts EstimateAreaOptions) (*AreaEstimate, error) {
	if opts.Precision == Precision1cm && !opts.Force1cm {
		return nil, errors.New("1cm precision requires the force-1cm option and must be enabled for your account by Mapbox support")
	}
	if opts.Precision != Precision1cm && opts.Force1cm {
		return nil, errors.New("force-1cm is set but the precision is not 1cm")
	}

	zoom, err := precisionZoom(opts.Precision)
	if err != nil {
		return nil, err
	}

	tiles := make(maptile.Set)
	for i, f := range features {
		if !opts.SkipValidation {
			if err := ValidateFeature(f); err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
		}
		cover, err := tilecover.Geometry(f.Geometry, zoom)
		if err != nil {
			return nil, fmt.Errorf("feature %d: tile cover: %w", i, err)
		}
		for t := range cover {
			tiles[t] = true
		}
	}

	var km2 float64
	for t := range tiles {
		km2 += geo.Area(t.Bound().ToPolygon()) / 1e6
	}

	return &AreaEstimate{
		KM2:         strconv.FormatInt(int64(math.Round(km2)), 10),
		Precision:   opts.Precision,
		PricingDocs: PricingDocsURL,
	}, nil
}
