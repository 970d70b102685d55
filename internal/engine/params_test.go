package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkToSimulateOutsideSimulateIsContractError(t *testing.T) {
	for _, p := range []*Parameterization{Accept(), Prefix()} {
		_, err := p.OkToSimulate(FrontierElement{}, &Flags{})
		require.Error(t, err)
		require.True(t, IsContractError(err))
		var ce *ContractError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeNotSimulating, ce.Code)
	}
}

func TestOkToSimulateActionBudget(t *testing.T) {
	p := Simulate(SimulationConfig{ActCriterion: ActCritMaxNum, MaxSimActions: 1})
	flags := &Flags{RemSimActions: 1}

	ok, err := p.OkToSimulate(FrontierElement{}, flags)
	require.NoError(t, err)
	assert.True(t, ok)

	flags.RemSimActions = 0
	ok, err = p.OkToSimulate(FrontierElement{}, flags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOkToSimulateLoopBudget(t *testing.T) {
	p := Simulate(SimulationConfig{LoopCriterion: LoopCritMaxDepth, MaxSimLoopDepth: 2})
	flags := &Flags{RemSimLoopDepth: 2}

	ok, err := p.OkToSimulate(FrontierElement{MaxLoopDepth: 2}, flags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.OkToSimulate(FrontierElement{MaxLoopDepth: 3}, flags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOkToSimulateDisabledCriteria(t *testing.T) {
	// With both criteria off, budgets are never consulted.
	p := Simulate(SimulationConfig{})
	ok, err := p.OkToSimulate(FrontierElement{MaxLoopDepth: 99}, &Flags{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInitialFlags(t *testing.T) {
	ctx := twoCanalContext(t)

	f := Prefix().InitialFlags(ctx)
	assert.Len(t, f.Canals, 2)
	assert.Equal(t, 0, f.RemSimActions)

	p := Simulate(SimulationConfig{
		ActCriterion:    ActCritMaxNum,
		MaxSimActions:   4,
		LoopCriterion:   LoopCritMaxDepth,
		MaxSimLoopDepth: 2,
	})
	f = p.InitialFlags(ctx)
	assert.Equal(t, 4, f.RemSimActions)
	assert.Equal(t, 2, f.RemSimLoopDepth)
	for _, cf := range f.Canals {
		assert.Equal(t, 0, cf.Consumed)
	}
}

func TestAnalysisKindString(t *testing.T) {
	assert.Equal(t, "accept", KindAccept.String())
	assert.Equal(t, "prefix", KindPrefix.String())
	assert.Equal(t, "simulate", KindSimulate.String())
}
