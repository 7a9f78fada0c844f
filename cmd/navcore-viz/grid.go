package main

import (
	"strings"

	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// cell symbols, rasterized in priority order (route beats node beats
// obstacle beats empty floor).
const (
	symEmpty    = '.'
	symObstacle = '#'
	symDoor     = '+'
	symStairs   = '^'
	symElevator = 'E'
	symWalkable = '*'
	symRoute    = 'o'
	symStart    = 'S'
	symEnd      = 'T'
)

// grid is a rasterized floor snapshot, width*height runes addressed [row][col].
type grid struct {
	cells         [][]rune
	width, height int
	bbox          geo.BBox
}

func newGrid(width, height int, bbox geo.BBox) *grid {
	cells := make([][]rune, height)
	for i := range cells {
		row := make([]rune, width)
		for j := range row {
			row[j] = symEmpty
		}
		cells[i] = row
	}
	return &grid{cells: cells, width: width, height: height, bbox: bbox}
}

func (g *grid) project(c geo.Coord) (int, int, bool) {
	spanLng := g.bbox.MaxLng - g.bbox.MinLng
	spanLat := g.bbox.MaxLat - g.bbox.MinLat
	if spanLng <= 0 || spanLat <= 0 {
		return 0, 0, false
	}
	x := int((c.Lng - g.bbox.MinLng) / spanLng * float64(g.width-1))
	// Screen rows grow downward; latitude grows northward, so flip.
	y := int((g.bbox.MaxLat - c.Lat) / spanLat * float64(g.height-1))
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, 0, false
	}
	return x, y, true
}

func (g *grid) set(c geo.Coord, r rune) {
	if x, y, ok := g.project(c); ok {
		g.cells[y][x] = r
	}
}

// setBox rasterizes a bbox's corners and a coarse outline into the grid, a
// sufficient approximation for a debug obstacle footprint.
func (g *grid) setBox(b geo.BBox, r rune) {
	const steps = 8
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		g.set(geo.Coord{Lng: b.MinLng + t*(b.MaxLng-b.MinLng), Lat: b.MinLat}, r)
		g.set(geo.Coord{Lng: b.MinLng + t*(b.MaxLng-b.MinLng), Lat: b.MaxLat}, r)
		g.set(geo.Coord{Lng: b.MinLng, Lat: b.MinLat + t*(b.MaxLat-b.MinLat)}, r)
		g.set(geo.Coord{Lng: b.MaxLng, Lat: b.MinLat + t*(b.MaxLat-b.MinLat)}, r)
	}
}

func (g *grid) render() string {
	var sb strings.Builder
	for _, row := range g.cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// floorBBox computes the bounding box of every node on floorID, expanded by
// a small margin so edge nodes aren't clipped at the grid border.
func floorBBox(g *graph.Graph, floorID string) (geo.BBox, bool) {
	var box geo.BBox
	first := true
	for _, id := range g.FloorNodeIDs(floorID) {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		if first {
			box = geo.BBox{MinLng: n.Coords.Lng, MaxLng: n.Coords.Lng, MinLat: n.Coords.Lat, MaxLat: n.Coords.Lat}
			first = false
			continue
		}
		if n.Coords.Lng < box.MinLng {
			box.MinLng = n.Coords.Lng
		}
		if n.Coords.Lng > box.MaxLng {
			box.MaxLng = n.Coords.Lng
		}
		if n.Coords.Lat < box.MinLat {
			box.MinLat = n.Coords.Lat
		}
		if n.Coords.Lat > box.MaxLat {
			box.MaxLat = n.Coords.Lat
		}
	}
	if first {
		return geo.BBox{}, false
	}
	return box.Expand(0.0001), true
}

// buildGrid rasterizes obstacles, nodes, and an optional route onto a
// width x height grid for floorID.
func buildGrid(g *graph.Graph, det *collision.Detector, floorID string, route []geo.Coord, width, height int) (*grid, bool) {
	bbox, ok := floorBBox(g, floorID)
	if !ok {
		return nil, false
	}
	gr := newGrid(width, height, bbox)

	if det != nil {
		for _, box := range det.ObstacleBoxes(floorID) {
			gr.setBox(box, symObstacle)
		}
	}

	for _, id := range g.FloorNodeIDs(floorID) {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		switch n.Type {
		case graph.NodeDoor:
			gr.set(n.Coords, symDoor)
		case graph.NodeStairs:
			gr.set(n.Coords, symStairs)
		case graph.NodeElevator:
			gr.set(n.Coords, symElevator)
		default:
			gr.set(n.Coords, symWalkable)
		}
	}

	for _, c := range route {
		gr.set(c, symRoute)
	}
	if len(route) > 0 {
		gr.set(route[0], symStart)
		gr.set(route[len(route)-1], symEnd)
	}

	return gr, true
}
