package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiactionSetSemantics(t *testing.T) {
	m := Mult(Action{Component: 1, Direction: Emission})
	m.Add(Action{Component: 2, Direction: Reception})
	m.Add(Action{Component: 1, Direction: Emission}) // duplicate

	assert.Len(t, m, 2)
	assert.True(t, m.Contains(Action{Component: 1, Direction: Emission}))
	assert.True(t, m.Contains(Action{Component: 2, Direction: Reception}))
	assert.False(t, m.Contains(Action{Component: 2, Direction: Emission}))
}

func TestMultiactionEqualAndClone(t *testing.T) {
	a := Mult(
		Action{Component: 0, Direction: Emission},
		Action{Component: 1, Direction: Reception},
	)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Add(Action{Component: 2, Direction: Reception})
	assert.False(t, a.Equal(b))
	assert.Len(t, a, 2, "clone must not share storage")
}

func TestMultiactionSortedOrder(t *testing.T) {
	m := Mult(
		Action{Component: 2, Direction: Reception},
		Action{Component: 0, Direction: Reception},
		Action{Component: 0, Direction: Emission},
	)
	sorted := m.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, Action{Component: 0, Direction: Emission}, sorted[0])
	assert.Equal(t, Action{Component: 0, Direction: Reception}, sorted[1])
	assert.Equal(t, Action{Component: 2, Direction: Reception}, sorted[2])
}

func TestMultiactionComponents(t *testing.T) {
	m := Mult(
		Action{Component: 3, Direction: Emission},
		Action{Component: 5, Direction: Reception},
	)
	comps := m.Components()
	assert.Equal(t, map[ComponentID]bool{3: true, 5: true}, comps)
}

func TestMultiTraceAt(t *testing.T) {
	mt := MultiTrace{
		{Mult(Action{Component: 0, Direction: Emission})},
		{},
	}
	assert.NotNil(t, mt.At(0, 0))
	assert.Nil(t, mt.At(0, 1), "past end")
	assert.Nil(t, mt.At(1, 0), "empty canal")
	assert.Equal(t, 1, mt.TotalLength())
}
