// Package geocode resolves free-text place names to coordinates via the
// Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hoangnm/vn-poi-map/internal/cache"
	"github.com/hoangnm/vn-poi-map/internal/geo"
)

// ErrNotFound is returned when the geocoder yields no result for a query.
// It is a user-visible outcome, not a service failure.
var ErrNotFound = errors.New("place not found")

const maxAttempts = 2

// Resolver geocodes place names with a bounded retry on transient failure
// and TTL memoization keyed on the exact input string.
type Resolver struct {
	client    *http.Client
	baseURL   string
	country   string
	userAgent string
	cache     *cache.Cache[geo.SearchCenter]

	// retryPause separates the two attempts; overridable in tests.
	retryPause time.Duration
}

// NewResolver creates a Resolver. The country qualifier is appended to every
// query to bias results.
func NewResolver(client *http.Client, baseURL, country, userAgent string, ttl time.Duration) *Resolver {
	return &Resolver{
		client:     client,
		baseURL:    baseURL,
		country:    country,
		userAgent:  userAgent,
		cache:      cache.New[geo.SearchCenter](ttl),
		retryPause: 1 * time.Second,
	}
}

// nominatimPlace is one entry of a Nominatim search response.
// Coordinates arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve geocodes place to a SearchCenter. A transient upstream failure is
// retried exactly once after a short pause; an empty result set maps to
// ErrNotFound without retrying.
func (r *Resolver) Resolve(ctx context.Context, place string) (geo.SearchCenter, error) {
	if c, ok := r.cache.Get(place); ok {
		return c, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(r.retryPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return geo.SearchCenter{}, ctx.Err()
			case <-timer.C:
			}
		}

		center, err := r.lookup(ctx, place)
		if err == nil {
			r.cache.Put(place, center)
			return center, nil
		}
		if errors.Is(err, ErrNotFound) {
			return geo.SearchCenter{}, err
		}
		lastErr = err
	}

	return geo.SearchCenter{}, fmt.Errorf("geocode %q: %w", place, lastErr)
}

func (r *Resolver) lookup(ctx context.Context, place string) (geo.SearchCenter, error) {
	values := url.Values{}
	values.Set("q", place+", "+r.country)
	values.Set("format", "json")
	values.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return geo.SearchCenter{}, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return geo.SearchCenter{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.SearchCenter{}, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return geo.SearchCenter{}, err
	}
	if len(places) == 0 {
		return geo.SearchCenter{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return geo.SearchCenter{}, fmt.Errorf("nominatim lat %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return geo.SearchCenter{}, fmt.Errorf("nominatim lon %q: %w", places[0].Lon, err)
	}

	return geo.SearchCenter{Lat: lat, Lon: lon, Label: place}, nil
}

// Purge drops expired memoization entries.
func (r *Resolver) Purge() int {
	return r.cache.Purge()
}
