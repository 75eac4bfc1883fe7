package poi

import (
	"testing"

	"github.com/hoangnm/vn-poi-map/internal/geo"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
)

func fp(v float64) *float64 { return &v }

var hanoi = geo.SearchCenter{Lat: 21.0285, Lon: 105.8542, Label: "Hà Nội"}

func TestNormalize_DedupeAndOrdering(t *testing.T) {
	elements := []overpass.Element{
		{ID: 1, Type: "node", Lat: fp(21.029), Lon: fp(105.855), Tags: map[string]string{"name": "Cafe A"}},
		{ID: 1, Type: "node", Lat: fp(21.029), Lon: fp(105.855), Tags: map[string]string{"name": "Cafe A"}},
		{ID: 2, Type: "way", Center: &overpass.Centroid{Lat: 21.027, Lon: 105.853}, Tags: map[string]string{"brand": "Cafe B"}},
	}

	pois := Normalize(elements, hanoi, 20)
	if len(pois) != 2 {
		t.Fatalf("expected 2 POIs after dedupe, got %d", len(pois))
	}
	if pois[0].DistanceM > pois[1].DistanceM {
		t.Fatal("results must be ordered by ascending distance")
	}
	for _, p := range pois {
		if p.DistanceM < 0 {
			t.Fatalf("negative distance for %+v", p)
		}
	}
	if pois[0].Name != "Cafe A" && pois[1].Name != "Cafe A" {
		t.Fatal("expected Cafe A in results")
	}
}

func TestNormalize_SortThenTruncate(t *testing.T) {
	// Far entity appears first upstream; the near one must survive a limit of 1.
	elements := []overpass.Element{
		{ID: 10, Type: "node", Lat: fp(21.1), Lon: fp(105.9), Tags: map[string]string{"name": "Far"}},
		{ID: 11, Type: "node", Lat: fp(21.0286), Lon: fp(105.8543), Tags: map[string]string{"name": "Near"}},
	}

	pois := Normalize(elements, hanoi, 1)
	if len(pois) != 1 {
		t.Fatalf("expected 1 POI, got %d", len(pois))
	}
	if pois[0].Name != "Near" {
		t.Fatalf("expected nearest entity to win truncation, got %q", pois[0].Name)
	}
}

func TestNormalize_SkipsUnusableElements(t *testing.T) {
	elements := []overpass.Element{
		{ID: 0, Type: "node", Lat: fp(21.0), Lon: fp(105.0)},              // no id
		{ID: 5, Type: "node", Tags: map[string]string{"name": "Nowhere"}}, // no coordinates
		{ID: 6, Type: "node", Lat: fp(21.03), Lon: fp(105.85), Tags: map[string]string{"name": "Kept"}},
	}

	pois := Normalize(elements, hanoi, 10)
	if len(pois) != 1 || pois[0].Name != "Kept" {
		t.Fatalf("expected only the usable element, got %+v", pois)
	}
}

func TestNormalize_SameIDDifferentTypeIsNotDuplicate(t *testing.T) {
	elements := []overpass.Element{
		{ID: 3, Type: "node", Lat: fp(21.03), Lon: fp(105.85)},
		{ID: 3, Type: "way", Center: &overpass.Centroid{Lat: 21.031, Lon: 105.851}},
	}
	if got := len(Normalize(elements, hanoi, 10)); got != 2 {
		t.Fatalf("expected 2 POIs for distinct (type,id) pairs, got %d", got)
	}
}

func TestNormalize_DisplayFields(t *testing.T) {
	elements := []overpass.Element{
		{ID: 1, Type: "node", Lat: fp(21.03), Lon: fp(105.85), Tags: map[string]string{
			"shop":             "supermarket",
			"brand":            "VinMart",
			"addr:housenumber": "12",
			"addr:street":      "Phố Huế",
			"addr:city":        "Hà Nội",
		}},
		{ID: 2, Type: "node", Lat: fp(21.031), Lon: fp(105.851), Tags: map[string]string{}},
	}

	pois := Normalize(elements, hanoi, 10)
	if len(pois) != 2 {
		t.Fatalf("expected 2 POIs, got %d", len(pois))
	}

	byID := map[int64]POI{}
	for _, p := range pois {
		byID[p.ID] = p
	}

	if p := byID[1]; p.Name != "VinMart" {
		t.Errorf("expected brand fallback name, got %q", p.Name)
	}
	if p := byID[1]; p.Category != "supermarket" {
		t.Errorf("expected shop category, got %q", p.Category)
	}
	if p := byID[1]; p.Address != "12, Phố Huế, Hà Nội" {
		t.Errorf("unexpected address %q", p.Address)
	}

	if p := byID[2]; p.Name != "(unnamed)" {
		t.Errorf("expected placeholder name, got %q", p.Name)
	}
	if p := byID[2]; p.Category != "" || p.Address != "" {
		t.Errorf("expected empty category and address, got %+v", p)
	}
}
