package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multitrace/sieve/internal/trace"
)

const (
	compA trace.ComponentID = iota
	compB
	compC
	compD
)

func testSignature(t *testing.T) *trace.Signature {
	t.Helper()
	sig := trace.NewSignature()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := sig.AddComponent(name)
		require.NoError(t, err)
	}
	return sig
}

func TestTransmissionMultiaction(t *testing.T) {
	comm := Transmission("m", compA, compB, compC)
	m := comm.Multiaction()
	assert.True(t, m.Contains(trace.Action{Component: compA, Direction: trace.Emission}))
	assert.True(t, m.Contains(trace.Action{Component: compB, Direction: trace.Reception}))
	assert.True(t, m.Contains(trace.Action{Component: compC, Direction: trace.Reception}))
	assert.Len(t, m, 3)
}

func TestAcceptsEmpty(t *testing.T) {
	ab := Transmission("m", compA, compB)
	tests := []struct {
		name string
		term *Interaction
		want bool
	}{
		{"empty", Empty(), true},
		{"comm", ab, false},
		{"loop", Loop(LoopWeak, ab), true},
		{"alt with empty branch", Alt(ab, Empty()), true},
		{"alt without", Alt(ab, ab), false},
		{"seq of comms", Seq(ab, ab), false},
		{"seq of loops", Seq(Loop(LoopStrict, ab), Loop(LoopPar, ab)), true},
		{"par with comm", Par(Empty(), ab), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.term.AcceptsEmpty())
		})
	}
}

func TestAvoids(t *testing.T) {
	ab := Transmission("m", compA, compB)
	cd := Transmission("n", compC, compD)
	avoid := map[trace.ComponentID]bool{compA: true}

	assert.False(t, ab.Avoids(avoid), "emitter is involved")
	assert.True(t, cd.Avoids(avoid))
	assert.True(t, Loop(LoopWeak, ab).Avoids(avoid), "loops iterate zero times")
	assert.True(t, Alt(ab, cd).Avoids(avoid), "one branch suffices")
	assert.False(t, Seq(ab, cd).Avoids(avoid), "both sides must avoid")

	recv := map[trace.ComponentID]bool{compB: true}
	assert.False(t, ab.Avoids(recv), "receiver is involved")
}

func TestComponentSetAndSize(t *testing.T) {
	term := Seq(
		Transmission("m", compA, compB),
		Loop(LoopWeak, Transmission("n", compC)),
	)
	assert.Equal(t, map[trace.ComponentID]bool{compA: true, compB: true, compC: true}, term.ComponentSet())
	assert.Equal(t, 4, term.Size())
}

func TestFormat(t *testing.T) {
	sig := testSignature(t)
	tests := []struct {
		term *Interaction
		want string
	}{
		{Empty(), "empty"},
		{Transmission("m", compA, compB), "a--m->b"},
		{Transmission("m", compA), "a--m->."},
		{Transmission("m", compA, compB, compC), "a--m->(b,c)"},
		{
			Seq(Transmission("m", compA, compB), Loop(LoopWeak, Transmission("k", compB, compA))),
			"seq(a--m->b,loopW(b--k->a))",
		},
		{
			CoRegion([]trace.ComponentID{compA}, Transmission("m", compA, compB), Transmission("n", compB, compA)),
			"coreg{a}(a--m->b,b--n->a)",
		},
		{
			Alt(Strict(Empty(), Transmission("m", compA, compB)), Par(Empty(), Empty())),
			"alt(strict(empty,a--m->b),par(empty,empty))",
		},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.term.Format(sig))
	}
}
