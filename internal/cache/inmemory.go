package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/flexprice/billing-console/internal/logger"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultExpiration lets entries live until explicitly invalidated,
	// matching the console's zero stale-time policy.
	DefaultExpiration = gocache.NoExpiration
	cleanupInterval   = 10 * time.Minute
)

// InMemoryCache is a process-local cache backed by go-cache.
type InMemoryCache struct {
	cache *gocache.Cache
}

var (
	inMemoryInstance *InMemoryCache
	inMemoryOnce     sync.Once
)

// NewInMemoryCache returns the shared in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	inMemoryOnce.Do(func() {
		inMemoryInstance = &InMemoryCache{
			cache: gocache.New(DefaultExpiration, cleanupInterval),
		}
	})
	return inMemoryInstance
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
	logger.GetLoggerWithContext(ctx).Debugw("cache prefix invalidated", "prefix", prefix)
}

func (c *InMemoryCache) Flush(ctx context.Context) {
	c.cache.Flush()
}
