package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memStore struct {
	data map[string]Entry
}

func newMemStore() *memStore { return &memStore{data: make(map[string]Entry)} }

func (m *memStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	e, ok := m.data[key]
	return e, ok, nil
}

func (m *memStore) Set(ctx context.Context, key string, e Entry) error {
	m.data[key] = e
	return nil
}

func TestKeyFormat(t *testing.T) {
	k := Key(1, "map123", 1700000000, 15, 8)
	assert.Equal(t, "visibilityEdges:v1:map123:1700000000:d15:k8", k)
}

func TestVisibilityEdgeCacheMissThenHitFromStore(t *testing.T) {
	store := newMemStore()
	vec, err := NewVisibilityEdgeCache(store, 1<<20)
	assert.NoError(t, err)

	ctx := context.Background()
	_, ok := vec.Get(ctx, "k1")
	assert.False(t, ok)

	entry := Entry{Edges: []EdgeTriple{{From: "a", To: "b", WeightM: 5}}}
	vec.Set(ctx, "k1", entry)

	got, ok := vec.Get(ctx, "k1")
	assert.True(t, ok)
	assert.Equal(t, entry.Edges, got.Edges)
}

func TestVisibilityEdgeCacheHotTierServesWithoutStoreRoundTrip(t *testing.T) {
	store := newMemStore()
	vec, err := NewVisibilityEdgeCache(store, 1<<20)
	assert.NoError(t, err)

	ctx := context.Background()
	entry := Entry{Edges: []EdgeTriple{{From: "a", To: "b", WeightM: 5}}}
	vec.Set(ctx, "k1", entry)

	delete(store.data, "k1") // simulate the store losing it; hot tier must still serve
	got, ok := vec.Get(ctx, "k1")
	assert.True(t, ok)
	assert.Equal(t, entry.Edges, got.Edges)
}

func TestRouteCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewRouteCache(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts "a"

	_, ok := c.Get("a")
	assert.False(t, ok)

	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, 2, c.Len())
}

func TestRouteCacheGetPromotesToMostRecentlyUsed(t *testing.T) {
	c := NewRouteCache(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")     // promote a
	c.Put("c", 3) // should evict "b", not "a"

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestRouteCacheDefaultsCapacityWhenNonPositive(t *testing.T) {
	c := NewRouteCache(0)
	assert.Equal(t, 100, c.capacity)
}
