package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

// Cache holds recently resolved durations. Misses and cache errors are
// indistinguishable to the caller; both fall through to the inner
// provider.
type Cache interface {
	Get(ctx context.Context, key string) (int, bool)
	Set(ctx context.Context, key string, seconds int, ttl time.Duration)
}

var _ Provider = (*CachedProvider)(nil)

// CachedProvider short-circuits repeated estimates for the same
// origin/destination pair within the TTL, bounding billed provider calls
// for hot vehicle/stop combinations.
type CachedProvider struct {
	inner    Provider
	cache    Cache
	ttl      time.Duration
	observer Observer
}

func WithCache(inner Provider, cache Cache, ttl time.Duration, obs Observer) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, observer: obs}
}

func (c *CachedProvider) Name() string { return c.inner.Name() }

func (c *CachedProvider) Estimate(ctx context.Context, origin, dest domain.Coordinates) (int, error) {
	key := cacheKey(origin, dest)
	if seconds, ok := c.cache.Get(ctx, key); ok {
		c.observe("hit")
		return seconds, nil
	}
	c.observe("miss")

	seconds, err := c.inner.Estimate(ctx, origin, dest)
	if err != nil {
		return 0, err
	}
	c.cache.Set(ctx, key, seconds, c.ttl)
	return seconds, nil
}

func (c *CachedProvider) observe(result string) {
	if c.observer != nil {
		c.observer.ProviderAttempt("cache", result)
	}
}

// cacheKey rounds to ~1m precision so a stationary vehicle's jittering GPS
// still hits the same entry.
func cacheKey(origin, dest domain.Coordinates) string {
	return fmt.Sprintf("eta:%.5f,%.5f:%.5f,%.5f", origin.Lng, origin.Lat, dest.Lng, dest.Lat)
}
