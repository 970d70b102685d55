package engine

import "github.com/multitrace/sieve/internal/trace"

// FrontierElement is a candidate next multiaction proposed by the
// specification term, annotated with the participating components and the
// deepest loop nesting its execution would instantiate.
//
// Pos locates the acted sub-term inside the specification term. It is an
// implementation channel between the frontier oracle and the rewriting
// function: the engine copies it through untouched and never inspects it.
type FrontierElement struct {
	Actions      trace.Multiaction
	Components   map[trace.ComponentID]bool
	MaxLoopDepth int
	Pos          []int
}

// Clone returns an independent copy of the element.
func (f FrontierElement) Clone() FrontierElement {
	comps := make(map[trace.ComponentID]bool, len(f.Components))
	for c := range f.Components {
		comps[c] = true
	}
	pos := make([]int, len(f.Pos))
	copy(pos, f.Pos)
	return FrontierElement{
		Actions:      f.Actions.Clone(),
		Components:   comps,
		MaxLoopDepth: f.MaxLoopDepth,
		Pos:          pos,
	}
}

// Term is the engine's view of a specification term: the frontier oracle.
// The term-rewriting successor function lives with the term, not here; the
// outer driver calls it after a step is chosen.
type Term interface {
	// Frontier enumerates the multiactions the term currently permits as
	// its next step, in a deterministic order.
	Frontier() []FrontierElement
}
