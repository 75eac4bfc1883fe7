// Package search runs one user-initiated search end to end: resolve the
// center, then fetch POIs and weather sequentially, isolating the failure of
// either so the other still contributes to the result.
package search

import (
	"context"
	"fmt"
	"log"

	"github.com/hoangnm/vn-poi-map/internal/geo"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
	"github.com/hoangnm/vn-poi-map/internal/poi"
	"github.com/hoangnm/vn-poi-map/internal/weather"
)

// Request carries the parameters of one search. Either Place or an explicit
// coordinate pair identifies the center; coordinates cover the map-click flow.
type Request struct {
	Place      string
	Lat, Lon   *float64
	RadiusM    int
	Categories []string
	Keyword    string
	Limit      int
}

// Result is the immutable outcome of one search. POIs and Weather are each
// best-effort; a failed half is nil with a corresponding warning.
type Result struct {
	Center   geo.SearchCenter `json:"center"`
	POIs     []poi.POI        `json:"pois"`
	Weather  *weather.Record  `json:"weather,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// POIFetcher is the POI half of a search.
type POIFetcher interface {
	Fetch(ctx context.Context, center geo.SearchCenter, radiusM int, predicates []overpass.TagPredicate, keyword string, limit int) ([]poi.POI, error)
}

// WeatherFetcher is the weather half of a search.
type WeatherFetcher interface {
	Get(ctx context.Context, lat, lon float64) (*weather.Record, error)
}

// Resolver turns a place name into a SearchCenter.
type Resolver interface {
	Resolve(ctx context.Context, place string) (geo.SearchCenter, error)
}

// Runner wires the three collaborators of a search.
type Runner struct {
	resolver Resolver
	pois     POIFetcher
	weather  WeatherFetcher
}

// NewRunner creates a Runner.
func NewRunner(resolver Resolver, pois POIFetcher, weather WeatherFetcher) *Runner {
	return &Runner{resolver: resolver, pois: pois, weather: weather}
}

// Run resolves the center and performs the POI and weather fetches one after
// another. Geocoding failure aborts the search; POI or weather failure only
// degrades it to a partial result with a warning.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	center, err := r.resolveCenter(ctx, req)
	if err != nil {
		return nil, err
	}

	predicates, err := poi.Predicates(req.Categories)
	if err != nil {
		return nil, err
	}

	result := &Result{Center: center}

	pois, err := r.pois.Fetch(ctx, center, req.RadiusM, predicates, req.Keyword, req.Limit)
	if err != nil {
		log.Printf("search: poi fetch failed for %q: %v", center.Label, err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("POI lookup failed: %v", err))
	} else {
		result.POIs = pois
	}

	rec, err := r.weather.Get(ctx, center.Lat, center.Lon)
	if err != nil {
		log.Printf("search: weather fetch failed for %q: %v", center.Label, err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("weather unavailable: %v", err))
	} else {
		result.Weather = rec
	}

	return result, nil
}

func (r *Runner) resolveCenter(ctx context.Context, req Request) (geo.SearchCenter, error) {
	if req.Lat != nil && req.Lon != nil {
		return geo.SearchCenter{
			Lat:   *req.Lat,
			Lon:   *req.Lon,
			Label: fmt.Sprintf("(%.5f,%.5f)", *req.Lat, *req.Lon),
		}, nil
	}
	return r.resolver.Resolve(ctx, req.Place)
}
