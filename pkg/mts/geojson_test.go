package mts

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestLoadFeature(t *testing.T) {
	path := writeFixture(t, "line.geojson", lineStringFeature)

	f, err := LoadFeature(path)
	if err != nil {
		t.Fatalf("LoadFeature: %v", err)
	}
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("geometry is %T, want LineString", f.Geometry)
	}
	if len(ls) != 2 || ls[0][0] != 45.6 {
		t.Errorf("unexpected coordinates: %v", ls)
	}
}

func TestLoadFeatureErrors(t *testing.T) {
	if _, err := LoadFeature("does/not/exist.geojson"); err == nil {
		t.Error("LoadFeature succeeded on a missing file")
	}

	path := writeFixture(t, "bad.geojson", "not geojson at all")
	if _, err := LoadFeature(path); err == nil {
		t.Error("LoadFeature succeeded on invalid JSON")
	}
}

func TestValidateFeature(t *testing.T) {
	valid := []*geojson.Feature{
		geojson.NewFeature(orb.Point{1, 2}),
		geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}),
		geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}),
	}
	for _, f := range valid {
		if err := ValidateFeature(f); err != nil {
			t.Errorf("ValidateFeature(%s): %v", f.Geometry.GeoJSONType(), err)
		}
	}

	invalid := []*geojson.Feature{
		nil,
		{},
		geojson.NewFeature(orb.LineString{}),
		geojson.NewFeature(orb.LineString{{0, 0}}),
		geojson.NewFeature(orb.Polygon{}),
		geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {0, 0}}}),
		geojson.NewFeature(orb.MultiPoint{}),
		geojson.NewFeature(orb.MultiPolygon{}),
	}
	for i, f := range invalid {
		if err := ValidateFeature(f); err == nil {
			t.Errorf("ValidateFeature accepted invalid feature %d", i)
		}
	}
}

func TestValidateSourceFiles(t *testing.T) {
	good := writeFixture(t, "good.geojson", lineStringFeature)
	if err := ValidateSourceFiles(good); err != nil {
		t.Errorf("ValidateSourceFiles: %v", err)
	}

	bad := writeFixture(t, "bad.geojson",
		`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[]}}`)
	err := ValidateSourceFiles(good, bad)
	if err == nil {
		t.Fatal("ValidateSourceFiles accepted an empty geometry")
	}
	if !strings.Contains(err.Error(), "feature 1") {
		t.Errorf("error %q does not name the offending feature", err)
	}
}

func TestWriteNDJSON(t *testing.T) {
	a := writeFixture(t, "a.geojson", lineStringFeature)
	b := writeFixture(t, "b.geojson",
		`{"type": "Feature",
		  "properties": {"name": "spread over lines"},
		  "geometry": {"type": "Point", "coordinates": [1, 2]}}`)

	var buf bytes.Buffer
	if err := writeNDJSON(&buf, []string{a, b}, true); err != nil {
		t.Fatalf("writeNDJSON: %v", err)
	}

	var lines int
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var f geojson.Feature
		if err := json.Unmarshal(scanner.Bytes(), &f); err != nil {
			t.Errorf("line %d is not a feature: %v", lines, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("wrote %d lines, want 2", lines)
	}
}

func TestWriteNDJSONValidates(t *testing.T) {
	bad := writeFixture(t, "bad.geojson",
		`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[]}}`)

	var buf bytes.Buffer
	if err := writeNDJSON(&buf, []string{bad}, true); err == nil {
		t.Error("writeNDJSON accepted an empty polygon")
	}
	if err := writeNDJSON(&buf, []string{bad}, false); err != nil {
		t.Errorf("writeNDJSON without validation: %v", err)
	}
}
