package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/pkg/geo"
)

func gridItems(n int) []Item {
	items := make([]Item, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			items = append(items, Item{
				ID:     itemID(x, y),
				Coords: geo.New(float64(x), float64(y)),
			})
		}
	}
	return items
}

func itemID(x, y int) string {
	return string(rune('a'+x)) + "_" + string(rune('a'+y))
}

func TestQueryReturnsPointsInRect(t *testing.T) {
	idx := New(gridItems(20))

	rect := geo.BBox{MinLng: 2, MinLat: 2, MaxLng: 4, MaxLat: 4}
	hits := idx.Query(rect)

	assert.Len(t, hits, 9) // 3x3 grid of points from 2..4 inclusive
	for _, h := range hits {
		assert.True(t, rect.Contains(h.Coords))
	}
}

func TestQueryIsStableAcrossRepeatedCalls(t *testing.T) {
	idx := New(gridItems(10))
	rect := geo.BBox{MinLng: 0, MinLat: 0, MaxLng: 3, MaxLat: 3}

	first := idx.Query(rect)
	second := idx.Query(rect)

	assert.ElementsMatch(t, first, second)
}

func TestQueryEmptyRegionReturnsNothing(t *testing.T) {
	idx := New(gridItems(5))
	hits := idx.Query(geo.BBox{MinLng: 100, MinLat: 100, MaxLng: 101, MaxLat: 101})
	assert.Empty(t, hits)
}

func TestLenAndIncrementalInsert(t *testing.T) {
	idx := NewEmpty(geo.BBox{MinLng: -1, MinLat: -1, MaxLng: 1, MaxLat: 1})
	for i := 0; i < 50; i++ {
		idx.Insert(Item{ID: itemID(i%10, i/10), Coords: geo.New(0, 0)})
	}
	assert.Equal(t, 50, idx.Len())
}
