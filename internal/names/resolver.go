package names

import (
	"context"
	"time"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
)

// DefaultTTL is how long a resolved name stays fresh.
const DefaultTTL = 24 * time.Hour

// CachedResolver fronts a Lookup with a Cache. It never fails: a lookup
// error yields the code itself, which is not cached.
type CachedResolver struct {
	lookup Lookup
	cache  Cache
	ttl    time.Duration
}

// NewCachedResolver creates a resolver; ttl <= 0 means DefaultTTL.
func NewCachedResolver(lookup Lookup, cache Cache, ttl time.Duration) *CachedResolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	return &CachedResolver{lookup: lookup, cache: cache, ttl: ttl}
}

// Resolve returns the display name for code.
func (r *CachedResolver) Resolve(ctx context.Context, code string) string {
	name, ok, err := r.cache.Get(ctx, code)
	if err != nil {
		logger.Warn("name cache get failed", logger.String("symbol", code), logger.ErrorField(err))
	}
	if ok {
		metrics.NameCacheLookups.WithLabelValues("hit").Inc()
		return name
	}
	metrics.NameCacheLookups.WithLabelValues("miss").Inc()

	if r.lookup == nil {
		return code
	}
	name, err = r.lookup.Lookup(ctx, code)
	if err != nil || name == "" {
		logger.Warn("name lookup failed", logger.String("symbol", code), logger.ErrorField(err))
		return code
	}
	if err := r.cache.Set(ctx, code, name, r.ttl); err != nil {
		logger.Warn("name cache set failed", logger.String("symbol", code), logger.ErrorField(err))
	}
	return name
}
