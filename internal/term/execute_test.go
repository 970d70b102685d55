package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multitrace/sieve/internal/engine"
)

func executeFirst(t *testing.T, term *Interaction) *Interaction {
	t.Helper()
	elts := term.Frontier()
	require.NotEmpty(t, elts)
	succ, err := term.Execute(elts[0])
	require.NoError(t, err)
	return succ
}

func TestExecuteComm(t *testing.T) {
	succ := executeFirst(t, Transmission("m", compA, compB))
	assert.Equal(t, OpEmpty, succ.Op)
}

func TestExecuteStrictDiscardsTerminatedLeft(t *testing.T) {
	sig := testSignature(t)
	ab := Transmission("m", compA, compB)
	ba := Transmission("k", compB, compA)

	term := Strict(ab, ba)
	succ := executeFirst(t, term)
	assert.Equal(t, "b--k->a", succ.Format(sig))
}

func TestExecuteAltCommitsBranch(t *testing.T) {
	sig := testSignature(t)
	ab := Transmission("m", compA, compB)
	cd := Transmission("n", compC, compD)

	term := Alt(ab, cd)
	elts := term.Frontier()
	require.Len(t, elts, 2)

	left, err := term.Execute(elts[0])
	require.NoError(t, err)
	assert.Equal(t, OpEmpty, left.Op, "left branch fully consumed")

	right, err := term.Execute(elts[1])
	require.NoError(t, err)
	assert.Equal(t, OpEmpty, right.Op)
	// The original term is untouched.
	assert.Equal(t, "alt(a--m->b,c--n->d)", term.Format(sig))
}

func TestExecuteSeqPrunesOvertakenLeft(t *testing.T) {
	sig := testSignature(t)
	left := Alt(Transmission("m", compA, compB), Transmission("n", compC, compD))
	right := Transmission("k", compC, compD)
	term := Seq(left, right)

	elts := term.Frontier()
	// Left alternatives, then the right overtaking through the branch
	// that avoids c and d.
	require.Len(t, elts, 3)
	rightElt := elts[2]
	require.Equal(t, []int{1}, rightElt.Pos)

	succ, err := term.Execute(rightElt)
	require.NoError(t, err)
	assert.Equal(t, "a--m->b", succ.Format(sig),
		"the overtaken alternative must commit to the avoiding branch")
}

func TestExecuteLoopUnfolds(t *testing.T) {
	sig := testSignature(t)
	body := Seq(Transmission("m", compA, compB), Transmission("k", compB, compA))
	loop := Loop(LoopWeak, body)

	elts := loop.Frontier()
	require.Len(t, elts, 1)
	assert.Equal(t, 1, elts[0].MaxLoopDepth)

	succ, err := loop.Execute(elts[0])
	require.NoError(t, err)
	assert.Equal(t, "seq(b--k->a,loopW(seq(a--m->b,b--k->a)))", succ.Format(sig))
}

func TestExecuteLoopKindsPickTheirOperator(t *testing.T) {
	sig := testSignature(t)
	body := Strict(Transmission("m", compA, compB), Transmission("k", compB, compA))

	for _, tc := range []struct {
		kind LoopKind
		want string
	}{
		{LoopStrict, "strict(b--k->a,loopS(strict(a--m->b,b--k->a)))"},
		{LoopWeak, "seq(b--k->a,loopW(strict(a--m->b,b--k->a)))"},
		{LoopPar, "par(b--k->a,loopP(strict(a--m->b,b--k->a)))"},
	} {
		loop := Loop(tc.kind, body)
		succ := executeFirst(t, loop)
		assert.Equal(t, tc.want, succ.Format(sig))
	}
}

func TestExecuteRejectsStalePosition(t *testing.T) {
	term := Transmission("m", compA, compB)
	_, err := term.Execute(engine.FrontierElement{Pos: []int{0}})
	assert.Error(t, err)

	composite := Seq(term, Transmission("k", compB, compA))
	_, err = composite.Execute(engine.FrontierElement{Pos: []int{}})
	assert.Error(t, err)
	_, err = composite.Execute(engine.FrontierElement{Pos: []int{5}})
	assert.Error(t, err)
}

func TestSimplifyFoldsEmpties(t *testing.T) {
	sig := testSignature(t)
	ab := Transmission("m", compA, compB)

	folded := Seq(Empty(), Par(ab, Empty())).simplify()
	assert.Equal(t, "a--m->b", folded.Format(sig))

	// Alternatives keep their empty branches: the choice is observable.
	kept := Alt(Empty(), ab).simplify()
	assert.Equal(t, "alt(empty,a--m->b)", kept.Format(sig))

	assert.Equal(t, OpEmpty, Loop(LoopWeak, Empty()).simplify().Op)
}
