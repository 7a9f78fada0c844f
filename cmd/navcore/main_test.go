package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctFloorsPreservesFirstOccurrenceOrder(t *testing.T) {
	got := distinctFloors([]string{"floor0", "floor0", "floor1", "floor0", "floor2"})
	assert.Equal(t, []string{"floor0", "floor1", "floor2"}, got)
}

func TestDistinctFloorsEmptyInput(t *testing.T) {
	assert.Nil(t, distinctFloors(nil))
}
