// Package cache provides the keyed response cache the console uses to keep
// screens consistent across mutations. It is advisory only: mutation paths
// invalidate affected key prefixes and the next read refetches from the
// billing backend.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the keyed cache service. Keys are semantic, e.g.
// "plan:plan_123:normalized".
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// Key builds a cache key from parts, e.g. Key("plan", planID, "normalized").
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// PrefixKey builds a prefix for DeleteByPrefix covering all keys of a
// resource, e.g. PrefixKey("plan", planID).
func PrefixKey(parts ...string) string {
	return fmt.Sprintf("%s:", Key(parts...))
}
