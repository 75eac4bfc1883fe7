package poi

import (
	"context"
	"fmt"
	"time"

	"github.com/hoangnm/vn-poi-map/internal/cache"
	"github.com/hoangnm/vn-poi-map/internal/geo"
	"github.com/hoangnm/vn-poi-map/internal/overpass"
)

// Executor runs a built query against the mirror pool.
type Executor interface {
	Execute(ctx context.Context, query string) (*overpass.Response, error)
}

// Service fetches and normalizes POIs, memoizing results per full query
// tuple so identical repeated searches within the TTL window skip the
// mirror pool entirely.
type Service struct {
	executor Executor
	cache    *cache.Cache[[]POI]
}

// NewService creates a Service over the given query executor.
func NewService(executor Executor, ttl time.Duration) *Service {
	return &Service{
		executor: executor,
		cache:    cache.New[[]POI](ttl),
	}
}

// Fetch builds the union query for the given parameters, executes it and
// normalizes the result. Failures from the mirror pool propagate unchanged.
func (s *Service) Fetch(ctx context.Context, center geo.SearchCenter, radiusM int, predicates []overpass.TagPredicate, keyword string, limit int) ([]POI, error) {
	query := overpass.BuildUnionQuery(center.Lat, center.Lon, radiusM, predicates, keyword)

	// The query text fully encodes center, radius, predicates and keyword.
	key := fmt.Sprintf("%s|%d", query, limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	resp, err := s.executor.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	pois := Normalize(resp.Elements, center, limit)
	s.cache.Put(key, pois)
	return pois, nil
}

// Purge drops expired memoization entries.
func (s *Service) Purge() int {
	return s.cache.Purge()
}
