// Package cache provides the content-addressed visibility-edge cache and
// the bounded-LRU route-result cache the engine consults on the query
// path. Visibility-edge storage is pluggable (Redis, Postgres, or an
// in-process hot tier) behind the Store interface; route results always
// live in-process.
package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"

	"github.com/wayfynd/navcore/internal/logger"
)

// EdgeTriple is the serialized form of one directed visibility edge.
type EdgeTriple struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	WeightM float64 `json:"weight_m"`
}

// Entry is what a Store persists under a visibility-edge cache key.
type Entry struct {
	Edges     []EdgeTriple   `json:"edges"`
	Meta      map[string]any `json:"meta"`
	CreatedAt int64          `json:"created_at"`
}

// Store is the storage-agnostic backend for visibility-edge entries.
// Implementations: RedisStore, PostgresStore.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// Key builds the content-addressed visibility-edge cache key:
// visibilityEdges:v<SCHEMA>:<map_id>:<map_time>:d<max_distance_m>:k<max_neighbors>
func Key(schema int, mapID string, mapTime int64, maxDistanceM float64, maxNeighbors int) string {
	return fmt.Sprintf("visibilityEdges:v%d:%s:%d:d%g:k%d", schema, mapID, mapTime, maxDistanceM, maxNeighbors)
}

// VisibilityEdgeCache orchestrates the hot tier and the backing Store.
// Writes are fire-and-forget: a Store failure is logged, never propagated,
// per §4.9.
type VisibilityEdgeCache struct {
	hot   *HotTier
	store Store
}

// NewVisibilityEdgeCache returns a cache backed by store with an in-process
// hot tier sized hotTierBytes.
func NewVisibilityEdgeCache(store Store, hotTierBytes int64) (*VisibilityEdgeCache, error) {
	hot, err := NewHotTier(hotTierBytes)
	if err != nil {
		return nil, err
	}
	return &VisibilityEdgeCache{hot: hot, store: store}, nil
}

// Get attempts the hot tier first, then the backing store, populating the
// hot tier on a store hit.
func (c *VisibilityEdgeCache) Get(ctx context.Context, key string) (Entry, bool) {
	if e, ok := c.hot.Get(key); ok {
		return e, true
	}
	if c.store == nil {
		return Entry{}, false
	}
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn("visibility edge cache: store get failed for %s: %v", key, err)
		return Entry{}, false
	}
	if ok {
		c.hot.Set(key, e)
	}
	return e, ok
}

// Set writes through to the hot tier immediately and to the backing store
// fire-and-forget.
func (c *VisibilityEdgeCache) Set(ctx context.Context, key string, e Entry) {
	c.hot.Set(key, e)
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, e); err != nil {
		logger.Warn("visibility edge cache: store set failed for %s: %v", key, err)
	}
}

// HotTier is a ristretto-backed in-process cache of visibility-edge
// entries, consulted before any out-of-process Store round trip.
type HotTier struct {
	cache *ristretto.Cache
}

// NewHotTier returns a hot tier capped at maxBytes of estimated cost.
func NewHotTier(maxBytes int64) (*HotTier, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxBytes / 10,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &HotTier{cache: c}, nil
}

func (h *HotTier) Get(key string) (Entry, bool) {
	v, ok := h.cache.Get(key)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

func (h *HotTier) Set(key string, e Entry) {
	cost := int64(len(e.Edges)*48 + 64)
	h.cache.SetWithTTL(key, e, cost, 0)
	h.cache.Wait()
}

// RouteCache is a bounded LRU of route-query results (default capacity 100
// per §3's lifecycle contract). Single-writer; concurrent reads are safe.
type RouteCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

type routeEntry struct {
	key   string
	value any
}

// NewRouteCache returns an LRU cache holding up to capacity entries.
func NewRouteCache(capacity int) *RouteCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &RouteCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key, promoting it to most-recently-used.
func (c *RouteCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*routeEntry).value, true
}

// Put inserts or updates key, evicting the least-recently-used entry if the
// cache is over capacity. An evicted-then-reinserted entry is benign by
// design (§5).
func (c *RouteCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*routeEntry).value = value
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&routeEntry{key: key, value: value})
	c.items[key] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*routeEntry).key)
	}
}

// Len returns the current number of cached entries.
func (c *RouteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
