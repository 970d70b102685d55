package trace

import (
	"fmt"
	"slices"
	"strings"
)

// ComponentID identifies a participant of the specification. IDs are
// interned by the Signature; the zero value is a valid ID.
type ComponentID int

// Direction distinguishes an emission from a reception.
type Direction int

const (
	Emission Direction = iota
	Reception
)

// String renders the conventional punctuation: "!" for emission, "?" for
// reception.
func (d Direction) String() string {
	if d == Emission {
		return "!"
	}
	return "?"
}

// Action is a single observable event: a component either emitting or
// receiving. Equality is by the two fields; there is no payload.
type Action struct {
	Component ComponentID
	Direction Direction
}

func (a Action) String() string {
	return fmt.Sprintf("c%d%s", a.Component, a.Direction)
}

// Multiaction is a set of actions considered simultaneous. It models
// synchronous multi-party communication: one emission observed together
// with its receptions.
//
// Only true values may be stored; use Mult or Add.
type Multiaction map[Action]bool

// Mult builds a multiaction from the given actions.
func Mult(actions ...Action) Multiaction {
	m := make(Multiaction, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

// Add inserts an action into the set.
func (m Multiaction) Add(a Action) {
	m[a] = true
}

// Contains reports whether the action is in the set.
func (m Multiaction) Contains(a Action) bool {
	return m[a]
}

// Equal reports set equality.
func (m Multiaction) Equal(other Multiaction) bool {
	if len(m) != len(other) {
		return false
	}
	for a := range m {
		if !other[a] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m Multiaction) Clone() Multiaction {
	out := make(Multiaction, len(m))
	for a := range m {
		out[a] = true
	}
	return out
}

// Components returns the set of components occurring in the multiaction.
func (m Multiaction) Components() map[ComponentID]bool {
	out := make(map[ComponentID]bool, len(m))
	for a := range m {
		out[a.Component] = true
	}
	return out
}

// Sorted returns the actions in a fixed order (component, then direction).
// All rendering and serialization must go through here.
func (m Multiaction) Sorted() []Action {
	out := make([]Action, 0, len(m))
	for a := range m {
		out = append(out, a)
	}
	slices.SortFunc(out, func(x, y Action) int {
		if x.Component != y.Component {
			return int(x.Component) - int(y.Component)
		}
		return int(x.Direction) - int(y.Direction)
	})
	return out
}

func (m Multiaction) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range m.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte('}')
	return b.String()
}
