package poi

import (
	"sort"
	"strings"

	"github.com/hoangnm/vn-poi-map/internal/geo"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
)

// unnamedPlaceholder is the display name for entities tagged with neither
// name nor brand.
const unnamedPlaceholder = "(unnamed)"

// categoryTags are probed in order to pick a display category.
var categoryTags = []string{"amenity", "shop", "tourism", "leisure"}

// addressTags are concatenated in order to build a display address.
var addressTags = []string{"addr:housenumber", "addr:street", "addr:city", "addr:province"}

type elementKey struct {
	osmType string
	id      int64
}

// Normalize turns raw Overpass elements into POIs: duplicates on (type,id)
// are dropped (first occurrence wins), coordinates are resolved from the
// element or its centroid, and the full deduplicated set is sorted by
// distance from the center before truncating to limit. Sorting before
// truncating guarantees the nearest entities are always included regardless
// of upstream ordering.
func Normalize(elements []overpass.Element, center geo.SearchCenter, limit int) []POI {
	seen := make(map[elementKey]struct{}, len(elements))
	results := make([]POI, 0, len(elements))

	for _, e := range elements {
		if e.ID == 0 {
			continue
		}
		osmType := e.Type
		if osmType == "" {
			osmType = "node"
		}
		key := elementKey{osmType: osmType, id: e.ID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		lat, lon, ok := resolveCoords(e)
		if !ok {
			continue
		}

		results = append(results, POI{
			ID:        e.ID,
			OSMType:   osmType,
			Name:      displayName(e.Tags),
			Lat:       lat,
			Lon:       lon,
			DistanceM: geo.Haversine(center.Lat, center.Lon, lat, lon),
			Category:  displayCategory(e.Tags),
			Address:   buildAddress(e.Tags),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceM < results[j].DistanceM
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// resolveCoords takes direct coordinates when present, falling back to the
// centroid Overpass returns for way and relation results.
func resolveCoords(e overpass.Element) (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

func displayName(tags map[string]string) string {
	if name := tags["name"]; name != "" {
		return name
	}
	if brand := tags["brand"]; brand != "" {
		return brand
	}
	return unnamedPlaceholder
}

func displayCategory(tags map[string]string) string {
	for _, k := range categoryTags {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}

func buildAddress(tags map[string]string) string {
	var parts []string
	for _, k := range addressTags {
		if v := tags[k]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
