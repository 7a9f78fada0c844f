package datasetio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "map_id": "bldg-1",
  "geometry": [
    {"id": "wall-1", "floor_id": "floor0", "kind": "wall", "feature": {"line_string": [{"lng":0,"lat":0},{"lng":0,"lat":1}]}}
  ],
  "nonwalkable_ids": ["wall-1"],
  "walkable_nodes": [
    {"id": "n1", "floor_id": "floor0", "coords": {"lng": 0.001, "lat": 0.001}, "node_type": "walkable"}
  ],
  "navigation_flags": {"has_public_bit": false}
}`

func TestLoadParsesDatasetIntoInitInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))

	input, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bldg-1", input.MapID)
	assert.Len(t, input.Geometry, 1)
	assert.Contains(t, input.NonwalkableSet, "wall-1")
	assert.Len(t, input.WalkableNodes, 1)
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/dataset.json")
	assert.Error(t, err)
}
