// Package spatialindex provides a per-floor 2D point index supporting
// axis-aligned range queries, used for fast neighbor enumeration during
// visibility-edge construction and nearest-node lookups.
package spatialindex

import "github.com/wayfynd/navcore/pkg/geo"

// Item is anything the index can store: a stable id plus a coordinate. The
// Graph package stores its Node.ID and Node.Coords here; the index itself
// stays ignorant of the richer Node type to avoid a dependency cycle.
type Item struct {
	ID     string
	Coords geo.Coord
}

const (
	maxItemsPerNode = 8
	maxDepth        = 20
)

// Index is a quadtree over (lng, lat). Build cost is O(n log n); Query cost
// is O(log n + k) expected for k hits. Query never mutates the tree, so
// repeated calls are stable.
type Index struct {
	root   *qnode
	bounds geo.BBox
}

type qnode struct {
	bounds   geo.BBox
	items    []Item
	children [4]*qnode // nil until split
	depth    int
}

// New builds an index over items, pre-sizing the root bounds to the union
// of their coordinates (widened only when every point shares one longitude
// or one latitude, so the root never has zero extent).
func New(items []Item) *Index {
	bounds := unionBounds(items)
	root := &qnode{bounds: bounds}
	idx := &Index{root: root, bounds: bounds}
	for _, it := range items {
		idx.Insert(it)
	}
	return idx
}

// NewEmpty builds an index with an explicit bounds, for incremental Insert
// calls when the full item set isn't known up front.
func NewEmpty(bounds geo.BBox) *Index {
	return &Index{root: &qnode{bounds: bounds}, bounds: bounds}
}

func unionBounds(items []Item) geo.BBox {
	if len(items) == 0 {
		return geo.BBox{MinLng: -180, MinLat: -90, MaxLng: 180, MaxLat: 90}
	}
	b := geo.BBox{MinLng: items[0].Coords.Lng, MaxLng: items[0].Coords.Lng,
		MinLat: items[0].Coords.Lat, MaxLat: items[0].Coords.Lat}
	for _, it := range items[1:] {
		if it.Coords.Lng < b.MinLng {
			b.MinLng = it.Coords.Lng
		}
		if it.Coords.Lng > b.MaxLng {
			b.MaxLng = it.Coords.Lng
		}
		if it.Coords.Lat < b.MinLat {
			b.MinLat = it.Coords.Lat
		}
		if it.Coords.Lat > b.MaxLat {
			b.MaxLat = it.Coords.Lat
		}
	}
	// Guard against a degenerate (zero-area) bounds when all points coincide
	// or are collinear, which would otherwise make every split a no-op.
	const eps = 1e-9
	if b.MaxLng-b.MinLng < eps {
		b.MinLng -= eps
		b.MaxLng += eps
	}
	if b.MaxLat-b.MinLat < eps {
		b.MinLat -= eps
		b.MaxLat += eps
	}
	return b
}

// Insert adds an item to the index.
func (idx *Index) Insert(it Item) {
	insert(idx.root, it)
}

func insert(n *qnode, it Item) {
	if n.children[0] == nil {
		n.items = append(n.items, it)
		if len(n.items) > maxItemsPerNode && n.depth < maxDepth {
			split(n)
		}
		return
	}
	insert(childFor(n, it.Coords), it)
}

func split(n *qnode) {
	midLng := (n.bounds.MinLng + n.bounds.MaxLng) / 2
	midLat := (n.bounds.MinLat + n.bounds.MaxLat) / 2

	n.children[0] = &qnode{bounds: geo.BBox{MinLng: n.bounds.MinLng, MinLat: n.bounds.MinLat, MaxLng: midLng, MaxLat: midLat}, depth: n.depth + 1}
	n.children[1] = &qnode{bounds: geo.BBox{MinLng: midLng, MinLat: n.bounds.MinLat, MaxLng: n.bounds.MaxLng, MaxLat: midLat}, depth: n.depth + 1}
	n.children[2] = &qnode{bounds: geo.BBox{MinLng: n.bounds.MinLng, MinLat: midLat, MaxLng: midLng, MaxLat: n.bounds.MaxLat}, depth: n.depth + 1}
	n.children[3] = &qnode{bounds: geo.BBox{MinLng: midLng, MinLat: midLat, MaxLng: n.bounds.MaxLng, MaxLat: n.bounds.MaxLat}, depth: n.depth + 1}

	items := n.items
	n.items = nil
	for _, it := range items {
		insert(childFor(n, it.Coords), it)
	}
}

func childFor(n *qnode, p geo.Coord) *qnode {
	midLng := (n.bounds.MinLng + n.bounds.MaxLng) / 2
	midLat := (n.bounds.MinLat + n.bounds.MaxLat) / 2
	right := p.Lng >= midLng
	top := p.Lat >= midLat
	switch {
	case !right && !top:
		return n.children[0]
	case right && !top:
		return n.children[1]
	case !right && top:
		return n.children[2]
	default:
		return n.children[3]
	}
}

// Query returns every indexed item whose coordinates fall within rect,
// inclusive of the boundary.
func (idx *Index) Query(rect geo.BBox) []Item {
	var out []Item
	queryNode(idx.root, rect, &out)
	return out
}

func queryNode(n *qnode, rect geo.BBox, out *[]Item) {
	if n == nil || !n.bounds.Intersects(rect) {
		return
	}
	if n.children[0] == nil {
		for _, it := range n.items {
			if rect.Contains(it.Coords) {
				*out = append(*out, it)
			}
		}
		return
	}
	for _, c := range n.children {
		queryNode(c, rect, out)
	}
}

// Len returns the total number of indexed items.
func (idx *Index) Len() int {
	return countNode(idx.root)
}

func countNode(n *qnode) int {
	if n == nil {
		return 0
	}
	if n.children[0] == nil {
		return len(n.items)
	}
	total := 0
	for _, c := range n.children {
		total += countNode(c)
	}
	return total
}
