package term

import (
	"fmt"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

// Execute returns the successor term after consuming the given frontier
// element. The element must come from a Frontier() call on this same term;
// a stale or foreign position path is an error.
//
// Rewriting commits alternative choices, unfolds loops with their
// sequencing operator, and for weak sequencing eliminates from the left
// sibling the behavior of the components that had to be avoided.
func (i *Interaction) Execute(elt engine.FrontierElement) (*Interaction, error) {
	succ, err := i.executeAt(elt.Pos, elt)
	if err != nil {
		return nil, err
	}
	return succ.simplify(), nil
}

func (i *Interaction) executeAt(path []int, elt engine.FrontierElement) (*Interaction, error) {
	switch i.Op {
	case OpComm:
		if len(path) != 0 {
			return nil, fmt.Errorf("position path descends below an atomic action")
		}
		return Empty(), nil

	case OpEmpty:
		return nil, fmt.Errorf("position path reaches the empty term")

	case OpStrict:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		if path[0] == 0 {
			l, err := i.Left.executeAt(path[1:], elt)
			if err != nil {
				return nil, err
			}
			return Strict(l, i.Right), nil
		}
		// Acting on the right means the left has terminated; discard it.
		return i.Right.executeAt(path[1:], elt)

	case OpSeq:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		if path[0] == 0 {
			l, err := i.Left.executeAt(path[1:], elt)
			if err != nil {
				return nil, err
			}
			return Seq(l, i.Right), nil
		}
		// Acting on the right: the element's components overtake the left
		// side, whose behavior on them must be eliminated.
		r, err := i.Right.executeAt(path[1:], elt)
		if err != nil {
			return nil, err
		}
		return Seq(i.Left.pruneAvoiding(elt.Components), r), nil

	case OpCoReg:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		if path[0] == 0 {
			l, err := i.Left.executeAt(path[1:], elt)
			if err != nil {
				return nil, err
			}
			return CoRegion(i.Region, l, i.Right), nil
		}
		region := make(map[trace.ComponentID]bool, len(i.Region))
		for _, c := range i.Region {
			region[c] = true
		}
		outside := make(map[trace.ComponentID]bool)
		for c := range elt.Components {
			if !region[c] {
				outside[c] = true
			}
		}
		r, err := i.Right.executeAt(path[1:], elt)
		if err != nil {
			return nil, err
		}
		return CoRegion(i.Region, i.Left.pruneAvoiding(outside), r), nil

	case OpAlt:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		// The choice is committed; the other branch disappears.
		if path[0] == 0 {
			return i.Left.executeAt(path[1:], elt)
		}
		return i.Right.executeAt(path[1:], elt)

	case OpPar:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		if path[0] == 0 {
			l, err := i.Left.executeAt(path[1:], elt)
			if err != nil {
				return nil, err
			}
			return Par(l, i.Right), nil
		}
		r, err := i.Right.executeAt(path[1:], elt)
		if err != nil {
			return nil, err
		}
		return Par(i.Left, r), nil

	case OpLoop:
		if err := checkBranch(path); err != nil {
			return nil, err
		}
		// Unfold one iteration: the acted body instance precedes the loop
		// itself under the loop's own sequencing operator.
		body, err := i.Left.executeAt(path[1:], elt)
		if err != nil {
			return nil, err
		}
		switch i.Kind {
		case LoopStrict:
			return Strict(body, i), nil
		case LoopWeak:
			return Seq(body, i), nil
		default:
			return Par(body, i), nil
		}

	default:
		return nil, fmt.Errorf("unknown operator %d", i.Op)
	}
}

func checkBranch(path []int) error {
	if len(path) == 0 {
		return fmt.Errorf("position path ends on a composite operator")
	}
	if path[0] != 0 && path[0] != 1 {
		return fmt.Errorf("position path branch %d out of range", path[0])
	}
	return nil
}

// pruneAvoiding rewrites the term into one that terminates without any
// action on the given components: alternatives commit to avoiding
// branches, loops whose body involves the components stop iterating,
// unavoidable actions collapse to empty. Callers guarantee Avoids held
// when the overtaking frontier element was offered.
func (i *Interaction) pruneAvoiding(components map[trace.ComponentID]bool) *Interaction {
	switch i.Op {
	case OpEmpty:
		return i

	case OpComm:
		if !i.Avoids(components) {
			return Empty()
		}
		return i

	case OpAlt:
		la := i.Left.Avoids(components)
		ra := i.Right.Avoids(components)
		switch {
		case la && ra:
			return Alt(i.Left.pruneAvoiding(components), i.Right.pruneAvoiding(components))
		case la:
			return i.Left.pruneAvoiding(components)
		case ra:
			return i.Right.pruneAvoiding(components)
		default:
			return Empty()
		}

	case OpLoop:
		if i.Left.Avoids(components) {
			return i
		}
		return Empty()

	case OpCoReg:
		return CoRegion(i.Region, i.Left.pruneAvoiding(components), i.Right.pruneAvoiding(components))

	case OpStrict:
		return Strict(i.Left.pruneAvoiding(components), i.Right.pruneAvoiding(components))

	case OpSeq:
		return Seq(i.Left.pruneAvoiding(components), i.Right.pruneAvoiding(components))

	default: // OpPar
		return Par(i.Left.pruneAvoiding(components), i.Right.pruneAvoiding(components))
	}
}

// simplify folds away empty operands of the sequencing and parallel
// operators. Alternatives are kept: Alt(empty, x) still expresses a
// choice.
func (i *Interaction) simplify() *Interaction {
	switch i.Op {
	case OpEmpty, OpComm:
		return i

	case OpLoop:
		body := i.Left.simplify()
		if body.Op == OpEmpty {
			return Empty()
		}
		return Loop(i.Kind, body)

	case OpAlt:
		return Alt(i.Left.simplify(), i.Right.simplify())

	default:
		l := i.Left.simplify()
		r := i.Right.simplify()
		if l.Op == OpEmpty {
			return r
		}
		if r.Op == OpEmpty {
			return l
		}
		switch i.Op {
		case OpStrict:
			return Strict(l, r)
		case OpSeq:
			return Seq(l, r)
		case OpCoReg:
			return CoRegion(i.Region, l, r)
		default:
			return Par(l, r)
		}
	}
}
