package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multitrace/sieve/internal/trace"
)

func TestStepCheckPartition(t *testing.T) {
	ctx := twoCanalContext(t)
	elt := FrontierElement{
		Actions: trace.Mult(
			trace.Action{Component: 0, Direction: trace.Emission},
			trace.Action{Component: 1, Direction: trace.Reception},
		),
		Components: map[trace.ComponentID]bool{0: true, 1: true},
	}

	ok := Step{
		Frontier: elt,
		Consume:  map[int]bool{0: true},
		Simulate: map[int]SimulationStepKind{1: SimAfterEnd},
	}
	require.NoError(t, ok.CheckPartition(ctx))

	overlap := Step{
		Frontier: elt,
		Consume:  map[int]bool{0: true, 1: true},
		Simulate: map[int]SimulationStepKind{1: SimAfterEnd},
	}
	assert.Error(t, overlap.CheckPartition(ctx))

	missing := Step{
		Frontier: elt,
		Consume:  map[int]bool{0: true},
		Simulate: map[int]SimulationStepKind{},
	}
	assert.Error(t, missing.CheckPartition(ctx))
}

func TestStepSortedAccessors(t *testing.T) {
	s := Step{
		Consume: map[int]bool{3: true, 1: true, 2: true},
		Simulate: map[int]SimulationStepKind{
			5: SimAfterEnd,
			0: SimBeforeStart,
		},
	}
	assert.Equal(t, []int{1, 2, 3}, s.SortedConsume())
	assert.Equal(t, []int{0, 5}, s.SortedSimulate())
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true, 5: true}, s.Canals())
}

func TestSimulationStepKindString(t *testing.T) {
	assert.Equal(t, "before-start", SimBeforeStart.String())
	assert.Equal(t, "after-end", SimAfterEnd.String())
}
