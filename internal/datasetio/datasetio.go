// Package datasetio reads the small operator-facing JSON dataset format
// consumed by cmd/navcore and cmd/navcore-viz: a structured description of
// geometry, node seeds, and connections, not raw floor-plan assets (PDF/IFC
// ingestion and object-storage retrieval stay the out-of-scope "external
// collaborator" named in §1 — this package only decodes the structured
// intermediate form that collaborator would have already produced).
package datasetio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wayfynd/navcore/internal/engine"
)

// dataset mirrors engine.InitInput field-for-field except NonwalkableSet,
// which arrives as a plain id list in JSON and is converted to a set on
// load.
type dataset struct {
	MapID             string                     `json:"map_id"`
	MapTimestampNS    int64                      `json:"map_timestamp_ns"`
	Geometry          []engine.GeometryFeature   `json:"geometry"`
	NonwalkableIDs    []string                   `json:"nonwalkable_ids"`
	WalkableNodes     []engine.NodeSeed          `json:"walkable_nodes"`
	ConnectorNodes    []engine.NodeSeed          `json:"connector_nodes"`
	EntranceNodes     []engine.NodeSeed          `json:"entrance_nodes"`
	Connections       []engine.ConnectionEntry   `json:"connections"`
	NavigationFlags   engine.NavigationFlags     `json:"navigation_flags"`
}

// Load reads and decodes a dataset JSON file into an engine.InitInput.
func Load(path string) (engine.InitInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.InitInput{}, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return engine.InitInput{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	nonwalkable := make(map[string]struct{}, len(ds.NonwalkableIDs))
	for _, id := range ds.NonwalkableIDs {
		nonwalkable[id] = struct{}{}
	}

	return engine.InitInput{
		MapID:           ds.MapID,
		MapTimestampNS:  ds.MapTimestampNS,
		Geometry:        ds.Geometry,
		NonwalkableSet:  nonwalkable,
		WalkableNodes:   ds.WalkableNodes,
		ConnectorNodes:  ds.ConnectorNodes,
		EntranceNodes:   ds.EntranceNodes,
		Connections:     ds.Connections,
		NavigationFlags: ds.NavigationFlags,
	}, nil
}
