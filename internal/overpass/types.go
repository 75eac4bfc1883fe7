package overpass

// Element is one raw entity of an Overpass response. Way and relation
// results carry a centroid instead of direct coordinates when the query
// asks for `out center`. Pointers distinguish absent coordinates from a
// legitimate 0.
type Element struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Centroid         `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Centroid is the computed center of a way or relation.
type Centroid struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Response is the JSON body returned by an Overpass interpreter.
type Response struct {
	Elements []Element `json:"elements"`
}
