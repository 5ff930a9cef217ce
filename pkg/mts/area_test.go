package mts

import (
	"strconv"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func polygonFeature() *geojson.Feature {
	return geojson.NewFeature(orb.Polygon{{
		{-122.5, 37.7},
		{-122.3, 37.7},
		{-122.3, 37.9},
		{-122.5, 37.9},
		{-122.5, 37.7},
	}})
}

func TestPrecisionZoom(t *testing.T) {
	cases := []struct {
		precision string
		zoom      int
	}{
		{Precision10m, 6},
		{Precision1m, 11},
		{Precision30cm, 14},
		{Precision1cm, 17},
	}

	for _, tc := range cases {
		z, err := precisionZoom(tc.precision)
		if err != nil {
			t.Fatalf("precisionZoom(%q): %v", tc.precision, err)
		}
		if int(z) != tc.zoom {
			t.Errorf("precisionZoom(%q) = %d, want %d", tc.precision, z, tc.zoom)
		}
	}

	if _, err := precisionZoom("5m"); err == nil {
		t.Error("precisionZoom accepted an unknown precision")
	}
}

func TestEstimateArea(t *testing.T) {
	est, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision10m,
	})
	if err != nil {
		t.Fatalf("EstimateArea: %v", err)
	}

	km2, err := strconv.ParseInt(est.KM2, 10, 64)
	if err != nil {
		t.Fatalf("KM2 %q is not an integer string: %v", est.KM2, err)
	}
	// A zoom 6 tile covers far more than the ~390 km2 polygon.
	if km2 < 390 {
		t.Errorf("km2 = %d, want at least the polygon's own area", km2)
	}
	if est.Precision != Precision10m {
		t.Errorf("precision = %q, want %q", est.Precision, Precision10m)
	}
	if est.PricingDocs != PricingDocsURL {
		t.Errorf("pricing docs = %q, want %q", est.PricingDocs, PricingDocsURL)
	}
}

func TestEstimateAreaHigherPrecisionIsTighter(t *testing.T) {
	coarse, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision10m,
	})
	if err != nil {
		t.Fatal(err)
	}
	fine, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision30cm,
	})
	if err != nil {
		t.Fatal(err)
	}

	coarseKM2, _ := strconv.ParseInt(coarse.KM2, 10, 64)
	fineKM2, _ := strconv.ParseInt(fine.KM2, 10, 64)
	if fineKM2 > coarseKM2 {
		t.Errorf("zoom 14 cover (%d km2) larger than zoom 6 cover (%d km2)", fineKM2, coarseKM2)
	}
}

func TestEstimateAreaDeduplicatesTiles(t *testing.T) {
	// The same feature twice must not double the estimate.
	one, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision10m,
	})
	if err != nil {
		t.Fatal(err)
	}
	two, err := EstimateArea([]*geojson.Feature{polygonFeature(), polygonFeature()}, EstimateAreaOptions{
		Precision: Precision10m,
	})
	if err != nil {
		t.Fatal(err)
	}
	if one.KM2 != two.KM2 {
		t.Errorf("duplicate features changed the estimate: %s vs %s", one.KM2, two.KM2)
	}
}

func TestEstimateArea1cmRequiresForce(t *testing.T) {
	_, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision1cm,
	})
	if err == nil || !strings.Contains(err.Error(), "force-1cm") {
		t.Errorf("err = %v, want force-1cm requirement", err)
	}

	_, err = EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision1cm,
		Force1cm:  true,
	})
	if err != nil {
		t.Errorf("EstimateArea with force-1cm: %v", err)
	}
}

func TestEstimateAreaForceWithoutPrecision(t *testing.T) {
	_, err := EstimateArea([]*geojson.Feature{polygonFeature()}, EstimateAreaOptions{
		Precision: Precision10m,
		Force1cm:  true,
	})
	if err == nil {
		t.Error("EstimateArea accepted force-1cm at 10m precision")
	}
}

func TestEstimateAreaValidatesFeatures(t *testing.T) {
	empty := geojson.NewFeature(orb.LineString{})

	_, err := EstimateArea([]*geojson.Feature{empty}, EstimateAreaOptions{
		Precision: Precision10m,
	})
	if err == nil {
		t.Error("EstimateArea accepted a feature with no coordinates")
	}

	if _, err := EstimateArea([]*geojson.Feature{empty}, EstimateAreaOptions{
		Precision:      Precision10m,
		SkipValidation: true,
	}); err != nil {
		t.Errorf("EstimateArea with validation disabled: %v", err)
	}
}
