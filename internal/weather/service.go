package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrUnavailable is returned once both the primary and the legacy paths are
// exhausted for a fetch.
var ErrUnavailable = errors.New("weather data unavailable")

// Service orchestrates the two-stage fetch: One Call 3.0 first when enabled,
// then the 2.5 current+forecast pair. The primary outcome is inspected
// explicitly; any primary failure, including a payload without a usable
// current section, falls through to the legacy path without surfacing.
type Service struct {
	client     *Client
	useOneCall bool
	units      string
	lang       string
}

// NewService creates a Service. units and lang are applied to every
// upstream call.
func NewService(client *Client, useOneCall bool, units, lang string) *Service {
	return &Service{
		client:     client,
		useOneCall: useOneCall,
		units:      units,
		lang:       lang,
	}
}

// Get fetches and normalizes weather for a coordinate pair. The API key is
// checked before any network call. POI and weather failures are isolated by
// the caller; this method only reports its own outcome.
func (s *Service) Get(ctx context.Context, lat, lon float64) (*Record, error) {
	if err := s.client.ensureKey(); err != nil {
		return nil, err
	}

	if s.useOneCall {
		payload, err := s.client.fetchOneCall(ctx, lat, lon, s.units, s.lang)
		switch {
		case err != nil:
			log.Printf("weather: one call fetch failed, falling back to 2.5: %v", err)
		case payload.Current == nil:
			log.Printf("weather: one call payload has no current section, falling back to 2.5")
		default:
			return normalizeOneCall(payload), nil
		}
	}

	cur, err := s.client.fetchCurrent(ctx, lat, lon, s.units, s.lang)
	if err != nil {
		return nil, fmt.Errorf("%w: current conditions: %v", ErrUnavailable, err)
	}
	fc, err := s.client.fetchForecast(ctx, lat, lon, s.units, s.lang)
	if err != nil {
		return nil, fmt.Errorf("%w: forecast: %v", ErrUnavailable, err)
	}

	return normalizeLegacy(cur, fc), nil
}
