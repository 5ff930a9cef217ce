package mts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadFeature reads a single GeoJSON feature from a file.
func LoadFeature(path string) (*geojson.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadFeatures reads one GeoJSON feature from each of the given files.
func LoadFeatures(paths []string) ([]*geojson.Feature, error) {
	features := make([]*geojson.Feature, 0, len(paths))
	for _, path := range paths {
		f, err := LoadFeature(path)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

// ValidateFeature checks the structural requirements the Tilesets API puts
// on uploaded features: a geometry must be present and must carry
// coordinates.
func ValidateFeature(f *geojson.Feature) error {
	if f == nil {
		return fmt.Errorf("feature is empty")
	}
	if f.Geometry == nil {
		return fmt.Errorf("feature has no geometry")
	}
	if emptyGeometry(f.Geometry) {
		return fmt.Errorf("feature geometry %s has no coordinates", f.Geometry.GeoJSONType())
	}
	return nil
}

func emptyGeometry(g orb.Geometry) bool {
	switch geom := g.(type) {
	case orb.LineString:
		return len(geom) < 2
	case orb.MultiPoint:
		return len(geom) == 0
	case orb.Polygon:
		return len(geom) == 0 || len(geom[0]) < 4
	case orb.MultiLineString:
		return len(geom) == 0
	case orb.MultiPolygon:
		return len(geom) == 0
	case orb.Collection:
		return len(geom) == 0
	}
	return false
}

// ValidateSourceFiles checks that every path holds a valid GeoJSON feature.
func ValidateSourceFiles(paths ...string) error {
	for i, path := range paths {
		f, err := LoadFeature(path)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		if err := ValidateFeature(f); err != nil {
			return fmt.Errorf("feature %d (%s): %w", i, path, err)
		}
	}
	return nil
}

// writeNDJSON streams the features from the given files as compact
// line-delimited GeoJSON, the format the source upload endpoint expects.
func writeNDJSON(w io.Writer, paths []string, validate bool) error {
	enc := json.NewEncoder(w) // Encode appends the newline separator
	for i, path := range paths {
		f, err := LoadFeature(path)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		if validate {
			if err := ValidateFeature(f); err != nil {
				return fmt.Errorf("feature %d (%s): %w", i, path, err)
			}
		}
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("feature %d (%s): encode: %w", i, path, err)
		}
	}
	return nil
}
