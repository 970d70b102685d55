package term

import (
	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

// Frontier enumerates the multiactions the term currently permits as its
// next step. Each element carries the acted sub-term's position path (0 =
// left child, 1 = right child) and the number of loop nodes above it, i.e.
// the loop nesting its execution would instantiate.
//
// Enumeration order is deterministic: left before right, loops in body
// order.
func (i *Interaction) Frontier() []engine.FrontierElement {
	var out []engine.FrontierElement
	i.collectFrontier(nil, 0, &out)
	return out
}

func (i *Interaction) collectFrontier(pos []int, loopDepth int, out *[]engine.FrontierElement) {
	switch i.Op {
	case OpEmpty:

	case OpComm:
		m := i.Multiaction()
		*out = append(*out, engine.FrontierElement{
			Actions:      m,
			Components:   m.Components(),
			MaxLoopDepth: loopDepth,
			Pos:          clonePath(pos),
		})

	case OpStrict:
		i.Left.collectFrontier(childPath(pos, 0), loopDepth, out)
		// The right side only opens once the left can have terminated.
		if i.Left.AcceptsEmpty() {
			i.Right.collectFrontier(childPath(pos, 1), loopDepth, out)
		}

	case OpSeq:
		i.Left.collectFrontier(childPath(pos, 0), loopDepth, out)
		// Weak sequencing: the right side may act for components the left
		// can terminate without.
		var rights []engine.FrontierElement
		i.Right.collectFrontier(childPath(pos, 1), loopDepth, &rights)
		for _, elt := range rights {
			if i.Left.Avoids(elt.Components) {
				*out = append(*out, elt)
			}
		}

	case OpCoReg:
		i.Left.collectFrontier(childPath(pos, 0), loopDepth, out)
		// Components inside the region never wait for the left side.
		region := make(map[trace.ComponentID]bool, len(i.Region))
		for _, c := range i.Region {
			region[c] = true
		}
		var rights []engine.FrontierElement
		i.Right.collectFrontier(childPath(pos, 1), loopDepth, &rights)
		for _, elt := range rights {
			outside := make(map[trace.ComponentID]bool)
			for c := range elt.Components {
				if !region[c] {
					outside[c] = true
				}
			}
			if i.Left.Avoids(outside) {
				*out = append(*out, elt)
			}
		}

	case OpPar, OpAlt:
		i.Left.collectFrontier(childPath(pos, 0), loopDepth, out)
		i.Right.collectFrontier(childPath(pos, 1), loopDepth, out)

	case OpLoop:
		i.Left.collectFrontier(childPath(pos, 0), loopDepth+1, out)
	}
}

func childPath(pos []int, branch int) []int {
	out := make([]int, len(pos), len(pos)+1)
	copy(out, pos)
	return append(out, branch)
}

func clonePath(pos []int) []int {
	out := make([]int, len(pos))
	copy(out, pos)
	return out
}
