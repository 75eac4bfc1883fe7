// Package poi normalizes raw Overpass elements into a stable point-of-interest
// shape and serves memoized fetches over the mirror pool.
package poi

// POI is a normalized point of interest. Unique by (OSMType, ID) within a
// result set; DistanceM is the great-circle distance from the search center.
type POI struct {
	ID        int64   `json:"id"`
	OSMType   string  `json:"osm_type"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	DistanceM float64 `json:"distance_m"`
	Category  string  `json:"category,omitempty"`
	Address   string  `json:"address,omitempty"`
}
