package cache

import (
	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/logger"
)

// CacheType represents the type of cache to use.
type CacheType string

const (
	CacheTypeInMemory CacheType = "inmemory"
	CacheTypeRedis    CacheType = "redis"
)

// Initialize builds the cache backend selected in configuration. Redis
// connection failures fall back to the in-memory cache so the console stays
// usable.
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	switch CacheType(cfg.Cache.Type) {
	case CacheTypeRedis:
		redisCache, err := NewRedisCache(cfg, log)
		if err != nil {
			log.Warnw("redis cache unavailable, falling back to in-memory", "error", err)
			return NewInMemoryCache()
		}
		return redisCache
	case CacheTypeInMemory:
		fallthrough
	default:
		return NewInMemoryCache()
	}
}
