package resolver

import (
	"context"
	"sync"

	"jwyoo/krx-report/internal/models"
)

// CachedResolver memoizes Resolve results by the full request tuple. Scope
// order and report-type overrides are part of the key: they change which
// candidate is tried first and therefore which snapshot is adopted.
//
// The wrapped resolver is only consulted once per distinct request for the
// lifetime of the cache. Safe for concurrent use.
type CachedResolver struct {
	inner StatementResolver

	mu      sync.Mutex
	entries map[string][]models.YearResult
}

// NewCached wraps a resolver with request-keyed memoization.
func NewCached(inner StatementResolver) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		entries: make(map[string][]models.YearResult),
	}
}

// Resolve returns the cached result sequence for req, resolving and storing
// it on first sight.
func (c *CachedResolver) Resolve(ctx context.Context, req models.ResolutionRequest) []models.YearResult {
	key := req.CacheKey()

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return copyResults(cached)
	}

	results := c.inner.Resolve(ctx, req)

	c.mu.Lock()
	c.entries[key] = results
	c.mu.Unlock()

	return copyResults(results)
}

// Len returns the number of distinct requests held in the cache.
func (c *CachedResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// copyResults shields the cache from callers appending to the returned
// slice. Row slices are shared; callers treat results as read-only.
func copyResults(results []models.YearResult) []models.YearResult {
	if results == nil {
		return nil
	}
	out := make([]models.YearResult, len(results))
	copy(out, results)
	return out
}
