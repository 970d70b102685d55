package term

import (
	"fmt"
	"strings"

	"github.com/multitrace/sieve/internal/trace"
)

// Op tags the node kinds of the interaction AST.
type Op int

const (
	OpEmpty Op = iota
	OpComm
	OpStrict
	OpSeq
	OpCoReg
	OpPar
	OpAlt
	OpLoop
)

// LoopKind selects the sequencing operator a loop unfolds with.
type LoopKind int

const (
	LoopStrict LoopKind = iota
	LoopWeak
	LoopPar
)

func (k LoopKind) String() string {
	switch k {
	case LoopStrict:
		return "strict"
	case LoopWeak:
		return "weak"
	default:
		return "par"
	}
}

// Interaction is one node of a specification term. Which fields are
// meaningful depends on Op:
//
//   - OpEmpty: nothing.
//   - OpComm: Emitter, Receivers, Message - a synchronous transmission,
//     observed as the multiaction {emitter!, receiver?...}.
//   - OpStrict, OpSeq, OpPar, OpAlt: Left and Right.
//   - OpCoReg: Left, Right and Region - weak sequencing where components
//     inside the region may reorder across the two sides.
//   - OpLoop: Left (the body) and Kind.
type Interaction struct {
	Op    Op
	Left  *Interaction
	Right *Interaction

	Kind   LoopKind
	Region []trace.ComponentID

	Emitter   trace.ComponentID
	Receivers []trace.ComponentID
	Message   string
}

// Empty returns the term expressing only the empty trace.
func Empty() *Interaction {
	return &Interaction{Op: OpEmpty}
}

// Transmission builds a synchronous communication: from emits message, the
// receivers receive it in the same multiaction. No receivers models an
// emission to the environment.
func Transmission(message string, from trace.ComponentID, to ...trace.ComponentID) *Interaction {
	recv := make([]trace.ComponentID, len(to))
	copy(recv, to)
	return &Interaction{Op: OpComm, Emitter: from, Receivers: recv, Message: message}
}

// Strict builds strict sequencing: everything in l precedes everything in r.
func Strict(l, r *Interaction) *Interaction {
	return &Interaction{Op: OpStrict, Left: l, Right: r}
}

// Seq builds weak sequencing: ordering is only enforced per component.
func Seq(l, r *Interaction) *Interaction {
	return &Interaction{Op: OpSeq, Left: l, Right: r}
}

// Par builds parallel composition.
func Par(l, r *Interaction) *Interaction {
	return &Interaction{Op: OpPar, Left: l, Right: r}
}

// Alt builds an alternative.
func Alt(l, r *Interaction) *Interaction {
	return &Interaction{Op: OpAlt, Left: l, Right: r}
}

// CoRegion builds weak sequencing relaxed for the components in region:
// their actions on the right side need not wait for the left side.
func CoRegion(region []trace.ComponentID, l, r *Interaction) *Interaction {
	cr := make([]trace.ComponentID, len(region))
	copy(cr, region)
	return &Interaction{Op: OpCoReg, Region: cr, Left: l, Right: r}
}

// Loop builds a repetition of body, unfolding with the sequencing operator
// selected by kind. Zero iterations are always permitted.
func Loop(kind LoopKind, body *Interaction) *Interaction {
	return &Interaction{Op: OpLoop, Kind: kind, Left: body}
}

// Multiaction returns the observable multiaction of an OpComm node.
func (i *Interaction) Multiaction() trace.Multiaction {
	m := trace.Mult(trace.Action{Component: i.Emitter, Direction: trace.Emission})
	for _, r := range i.Receivers {
		m.Add(trace.Action{Component: r, Direction: trace.Reception})
	}
	return m
}

// AcceptsEmpty reports whether the term can express the empty trace.
func (i *Interaction) AcceptsEmpty() bool {
	switch i.Op {
	case OpEmpty, OpLoop:
		return true
	case OpComm:
		return false
	case OpAlt:
		return i.Left.AcceptsEmpty() || i.Right.AcceptsEmpty()
	default: // OpStrict, OpSeq, OpCoReg, OpPar
		return i.Left.AcceptsEmpty() && i.Right.AcceptsEmpty()
	}
}

// Avoids reports whether the term can reach termination without any action
// on the given components.
func (i *Interaction) Avoids(components map[trace.ComponentID]bool) bool {
	switch i.Op {
	case OpEmpty, OpLoop:
		// A loop avoids anything by iterating zero times.
		return true
	case OpComm:
		if components[i.Emitter] {
			return false
		}
		for _, r := range i.Receivers {
			if components[r] {
				return false
			}
		}
		return true
	case OpAlt:
		return i.Left.Avoids(components) || i.Right.Avoids(components)
	default:
		return i.Left.Avoids(components) && i.Right.Avoids(components)
	}
}

// ComponentSet returns every component occurring in the term.
func (i *Interaction) ComponentSet() map[trace.ComponentID]bool {
	out := make(map[trace.ComponentID]bool)
	i.collectComponents(out)
	return out
}

func (i *Interaction) collectComponents(out map[trace.ComponentID]bool) {
	switch i.Op {
	case OpEmpty:
	case OpComm:
		out[i.Emitter] = true
		for _, r := range i.Receivers {
			out[r] = true
		}
	case OpLoop:
		i.Left.collectComponents(out)
	default:
		i.Left.collectComponents(out)
		i.Right.collectComponents(out)
	}
}

// Size returns the number of nodes, a rough complexity measure used by the
// random generator and diagnostics.
func (i *Interaction) Size() int {
	switch i.Op {
	case OpEmpty, OpComm:
		return 1
	case OpLoop:
		return 1 + i.Left.Size()
	default:
		return 1 + i.Left.Size() + i.Right.Size()
	}
}

// Format renders the term deterministically with the signature's component
// names, e.g. "seq(a--m->b,loopW(b--k->a))".
func (i *Interaction) Format(sig *trace.Signature) string {
	var b strings.Builder
	i.format(&b, sig)
	return b.String()
}

// String renders the term with raw component ids.
func (i *Interaction) String() string {
	return i.Format(nil)
}

func (i *Interaction) format(b *strings.Builder, sig *trace.Signature) {
	name := func(c trace.ComponentID) string {
		if sig == nil {
			return fmt.Sprintf("c%d", c)
		}
		return sig.ComponentName(c)
	}
	switch i.Op {
	case OpEmpty:
		b.WriteString("empty")
	case OpComm:
		b.WriteString(name(i.Emitter))
		b.WriteString("--")
		b.WriteString(i.Message)
		b.WriteString("->")
		switch len(i.Receivers) {
		case 0:
			b.WriteByte('.')
		case 1:
			b.WriteString(name(i.Receivers[0]))
		default:
			b.WriteByte('(')
			for k, r := range i.Receivers {
				if k > 0 {
					b.WriteByte(',')
				}
				b.WriteString(name(r))
			}
			b.WriteByte(')')
		}
	case OpLoop:
		switch i.Kind {
		case LoopStrict:
			b.WriteString("loopS(")
		case LoopWeak:
			b.WriteString("loopW(")
		default:
			b.WriteString("loopP(")
		}
		i.Left.format(b, sig)
		b.WriteByte(')')
	case OpCoReg:
		b.WriteString("coreg{")
		for k, c := range i.Region {
			if k > 0 {
				b.WriteByte(',')
			}
			b.WriteString(name(c))
		}
		b.WriteString("}(")
		i.Left.format(b, sig)
		b.WriteByte(',')
		i.Right.format(b, sig)
		b.WriteByte(')')
	default:
		switch i.Op {
		case OpStrict:
			b.WriteString("strict(")
		case OpSeq:
			b.WriteString("seq(")
		case OpPar:
			b.WriteString("par(")
		case OpAlt:
			b.WriteString("alt(")
		}
		i.Left.format(b, sig)
		b.WriteByte(',')
		i.Right.format(b, sig)
		b.WriteByte(')')
	}
}
