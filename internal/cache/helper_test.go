package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cachedPlan struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestUnmarshalCacheValue(t *testing.T) {
	// In-memory backend stores live objects.
	live := &cachedPlan{ID: "plan_1", Name: "Starter"}
	got, ok := UnmarshalCacheValue[cachedPlan](live)
	assert.True(t, ok)
	assert.Equal(t, live, got)

	// Redis backend stores JSON strings.
	got, ok = UnmarshalCacheValue[cachedPlan](`{"id":"plan_1","name":"Starter"}`)
	assert.True(t, ok)
	assert.Equal(t, "plan_1", got.ID)
	assert.Equal(t, "Starter", got.Name)

	// Anything else fails the conversion.
	_, ok = UnmarshalCacheValue[cachedPlan](nil)
	assert.False(t, ok)
	_, ok = UnmarshalCacheValue[cachedPlan](42)
	assert.False(t, ok)
	_, ok = UnmarshalCacheValue[cachedPlan]("not json")
	assert.False(t, ok)
}
