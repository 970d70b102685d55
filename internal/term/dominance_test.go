package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

func dominanceContext(t *testing.T, mt trace.MultiTrace, numComponents int) *engine.Context {
	t.Helper()
	ctx, err := engine.NewContext(mt, trace.Discrete(numComponents), Dominance{})
	require.NoError(t, err)
	return ctx
}

func headsOf(ctx *engine.Context) []engine.HeadAction {
	var heads []engine.HeadAction
	for canalID, tr := range ctx.MultiTrace {
		if len(tr) > 0 {
			heads = append(heads, engine.HeadAction{
				CanalID: canalID,
				Actions: tr[0],
				IsLast:  len(tr) == 1,
			})
		}
	}
	return heads
}

func TestIsUnivocalSingleOffer(t *testing.T) {
	term := Par(Transmission("m", compA), Transmission("n", compB))
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{trace.Mult(trace.Action{Component: compB, Direction: trace.Emission})},
	}
	ctx := dominanceContext(t, mt, 2)

	head := trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})
	assert.True(t, Dominance{}.IsUnivocal(ctx, term, 0, head))
}

func TestIsUnivocalRejectsAmbiguousOffers(t *testing.T) {
	// Component a may act alone or towards b: two distinct multiactions
	// touch a's canal.
	term := Alt(Transmission("m", compA), Transmission("m", compA, compB))
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{},
	}
	ctx := dominanceContext(t, mt, 2)

	head := trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})
	assert.False(t, Dominance{}.IsUnivocal(ctx, term, 0, head))
}

func TestIsUnivocalRequiresAnOffer(t *testing.T) {
	term := Transmission("m", compB)
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{trace.Mult(trace.Action{Component: compB, Direction: trace.Emission})},
	}
	ctx := dominanceContext(t, mt, 2)

	head := trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})
	assert.False(t, Dominance{}.IsUnivocal(ctx, term, 0, head), "the term never offers a's action")
}

func TestDominationDomainParallelIndependence(t *testing.T) {
	term := Par(Transmission("m", compA), Transmission("n", compB))
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{trace.Mult(trace.Action{Component: compB, Direction: trace.Emission})},
	}
	ctx := dominanceContext(t, mt, 2)
	heads := headsOf(ctx)
	require.Len(t, heads, 2)

	frontiers, followUps := Dominance{}.HeadFrontiers(false, ctx, term, heads)
	require.Len(t, frontiers[0], 1)
	require.Len(t, frontiers[1], 1)

	// Each side survives the other's execution, so each dominates the
	// other.
	domain := Dominance{}.DominationDomain(false, ctx, heads, followUps, 0)
	assert.Equal(t, map[int]bool{1: true}, domain)
	domain = Dominance{}.DominationDomain(false, ctx, heads, followUps, 1)
	assert.Equal(t, map[int]bool{0: true}, domain)
}

func TestDominationDomainAlternativeConflict(t *testing.T) {
	// Executing one branch of the alternative removes the other head's
	// option entirely; neither dominates.
	term := Alt(Transmission("m", compA), Transmission("n", compB))
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{trace.Mult(trace.Action{Component: compB, Direction: trace.Emission})},
	}
	ctx := dominanceContext(t, mt, 2)
	heads := headsOf(ctx)

	_, followUps := Dominance{}.HeadFrontiers(false, ctx, term, heads)
	domain := Dominance{}.DominationDomain(false, ctx, heads, followUps, 0)
	assert.Empty(t, domain)
}

func TestDominanceDrivesPORInActionMatches(t *testing.T) {
	// End-to-end: with the default oracle, the parallel term reduces to
	// the first canal's step alone.
	term := Par(Transmission("m", compA), Transmission("n", compB))
	mt := trace.MultiTrace{
		{trace.Mult(trace.Action{Component: compA, Direction: trace.Emission})},
		{trace.Mult(trace.Action{Component: compB, Direction: trace.Emission})},
	}
	ctx := dominanceContext(t, mt, 2)
	p := engine.Prefix()
	flags := p.InitialFlags(ctx)

	steps, err := p.ActionMatches(true, false, ctx, term, flags)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, map[int]bool{0: true}, steps[0].Consume)

	exhaustive, err := p.ActionMatches(false, false, ctx, term, flags)
	require.NoError(t, err)
	assert.Len(t, exhaustive, 2)
}