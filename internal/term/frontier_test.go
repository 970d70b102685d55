package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

func frontierActions(elts []engine.FrontierElement) []string {
	out := make([]string, len(elts))
	for i, elt := range elts {
		out[i] = elt.Actions.String()
	}
	return out
}

func TestFrontierComm(t *testing.T) {
	comm := Transmission("m", compA, compB)
	elts := comm.Frontier()
	require.Len(t, elts, 1)
	assert.True(t, elts[0].Actions.Equal(comm.Multiaction()))
	assert.Equal(t, map[trace.ComponentID]bool{compA: true, compB: true}, elts[0].Components)
	assert.Equal(t, 0, elts[0].MaxLoopDepth)
	assert.Empty(t, elts[0].Pos)
}

func TestFrontierEmpty(t *testing.T) {
	assert.Empty(t, Empty().Frontier())
}

func TestFrontierStrict(t *testing.T) {
	ab := Transmission("m", compA, compB)
	cd := Transmission("n", compC, compD)

	// Right side closed while the left cannot terminate.
	elts := Strict(ab, cd).Frontier()
	require.Len(t, elts, 1)
	assert.Equal(t, []int{0}, elts[0].Pos)

	// A loop on the left can terminate, opening the right side.
	elts = Strict(Loop(LoopWeak, ab), cd).Frontier()
	require.Len(t, elts, 2)
	assert.Equal(t, []int{0, 0}, elts[0].Pos)
	assert.Equal(t, 1, elts[0].MaxLoopDepth)
	assert.Equal(t, []int{1}, elts[1].Pos)
	assert.Equal(t, 0, elts[1].MaxLoopDepth)
}

func TestFrontierSeqWeakOrdering(t *testing.T) {
	ab := Transmission("m", compA, compB)
	cd := Transmission("n", compC, compD)
	ba := Transmission("k", compB, compA)

	// Disjoint components: the right side may overtake.
	elts := Seq(ab, cd).Frontier()
	assert.Len(t, elts, 2)

	// Shared components: the right side must wait.
	elts = Seq(ab, ba).Frontier()
	require.Len(t, elts, 1)
	assert.Equal(t, []int{0}, elts[0].Pos)
}

func TestFrontierCoRegionRelaxation(t *testing.T) {
	ab := Transmission("m", compA, compB)
	ca := Transmission("k", compC, compA)

	// Plain weak sequencing blocks the right side on a.
	assert.Len(t, Seq(ab, ca).Frontier(), 1)

	// With a and c in the coregion, only components outside it wait.
	elts := CoRegion([]trace.ComponentID{compA, compC}, ab, ca).Frontier()
	assert.Len(t, elts, 2, "got %v", frontierActions(elts))
}

func TestFrontierAltAndPar(t *testing.T) {
	ab := Transmission("m", compA, compB)
	cd := Transmission("n", compC, compD)

	for _, term := range []*Interaction{Alt(ab, cd), Par(ab, cd)} {
		elts := term.Frontier()
		require.Len(t, elts, 2)
		assert.Equal(t, []int{0}, elts[0].Pos)
		assert.Equal(t, []int{1}, elts[1].Pos)
	}
}

func TestFrontierLoopDepth(t *testing.T) {
	inner := Loop(LoopStrict, Transmission("m", compA, compB))
	outer := Loop(LoopWeak, inner)
	elts := outer.Frontier()
	require.Len(t, elts, 1)
	assert.Equal(t, 2, elts[0].MaxLoopDepth)
	assert.Equal(t, []int{0, 0}, elts[0].Pos)
}
