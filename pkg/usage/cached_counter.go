package usage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promoflow/entitlements/pkg/plan"
)

// DefaultCacheTTL keeps counts fresh enough for quota checks while
// absorbing dashboard read bursts.
const DefaultCacheTTL = 30 * time.Second

// CachedCounter is a read-through cache in front of another Counter.
// It is an optional layer: correctness of the engine never depends on it,
// and every cache failure falls through to the source counter.
type CachedCounter struct {
	next   Counter
	client *redis.Client
	ttl    time.Duration
}

// NewCachedCounter wraps next with a redis read-through cache.
// Panics on nil arguments to fail fast during initialization.
func NewCachedCounter(next Counter, client *redis.Client, ttl time.Duration) *CachedCounter {
	if next == nil {
		panic("usage: next Counter is required")
	}
	if client == nil {
		panic("usage: redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCounter{next: next, client: client, ttl: ttl}
}

func cacheKey(tenantID string, res plan.Resource) string {
	return fmt.Sprintf("usage:%s:%s", tenantID, res)
}

// Count returns the cached value when present, otherwise counts at the
// source and stores the result best-effort.
func (c *CachedCounter) Count(ctx context.Context, tenantID string, res plan.Resource) (int64, error) {
	key := cacheKey(tenantID, res)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
	}

	n, err := c.next.Count(ctx, tenantID, res)
	if err != nil {
		return 0, err
	}

	// Best-effort write: a cache outage must not break counting.
	_ = c.client.Set(ctx, key, strconv.FormatInt(n, 10), c.ttl).Err()

	return n, nil
}

// Resources delegates to the source counter.
func (c *CachedCounter) Resources() []plan.Resource {
	return c.next.Resources()
}

// Invalidate drops the cached count for a tenant resource, for callers
// that just created or deleted a record and want the next check fresh.
func (c *CachedCounter) Invalidate(ctx context.Context, tenantID string, res plan.Resource) {
	_ = c.client.Del(ctx, cacheKey(tenantID, res)).Err()
}
