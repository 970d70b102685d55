package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscrete(t *testing.T) {
	cl := Discrete(3)
	assert.Equal(t, 3, cl.NumCanals())
	for i := 0; i < 3; i++ {
		id, ok := cl.CanalOf(ComponentID(i))
		require.True(t, ok)
		assert.Equal(t, i, id)
	}
}

func TestGrouped(t *testing.T) {
	cl, err := Grouped([][]ComponentID{{0}, {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, cl.NumCanals())

	id, ok := cl.CanalOf(2)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, []ComponentID{1, 2}, cl.ComponentsOf(1))
}

func TestGroupedRejectsEmptyGroup(t *testing.T) {
	_, err := Grouped([][]ComponentID{{0}, {}})
	assert.Error(t, err)
}

func TestGroupedRejectsDuplicateComponent(t *testing.T) {
	_, err := Grouped([][]ComponentID{{0, 1}, {1}})
	assert.Error(t, err)
}

func TestCanalsOf(t *testing.T) {
	cl, err := Grouped([][]ComponentID{{0}, {1, 2}})
	require.NoError(t, err)

	canals := cl.CanalsOf(map[ComponentID]bool{0: true, 2: true})
	assert.Equal(t, map[int]bool{0: true, 1: true}, canals)

	// Unknown components are dropped, not invented.
	canals = cl.CanalsOf(map[ComponentID]bool{7: true})
	assert.Empty(t, canals)
}

func TestCanalOfUnknown(t *testing.T) {
	cl := Discrete(1)
	_, ok := cl.CanalOf(9)
	assert.False(t, ok)
}
