package trace

import "fmt"

// CoLocalization is the fixed, surjective mapping from components to canal
// lane indices. Components sharing a canal are observed as a single ordered
// sequence of multiactions.
//
// The index is immutable after construction and valid for the whole of an
// analysis run.
type CoLocalization struct {
	canals  [][]ComponentID
	canalOf map[ComponentID]int
}

// Discrete builds the index where every component gets its own canal:
// component i maps to canal i.
func Discrete(numComponents int) CoLocalization {
	canals := make([][]ComponentID, numComponents)
	canalOf := make(map[ComponentID]int, numComponents)
	for i := 0; i < numComponents; i++ {
		canals[i] = []ComponentID{ComponentID(i)}
		canalOf[ComponentID(i)] = i
	}
	return CoLocalization{canals: canals, canalOf: canalOf}
}

// Grouped builds the index from explicit canal groups. Every component must
// appear in exactly one non-empty group.
func Grouped(groups [][]ComponentID) (CoLocalization, error) {
	canals := make([][]ComponentID, 0, len(groups))
	canalOf := make(map[ComponentID]int)
	for i, group := range groups {
		if len(group) == 0 {
			return CoLocalization{}, fmt.Errorf("canal %d: empty component group", i)
		}
		members := make([]ComponentID, 0, len(group))
		for _, c := range group {
			if prev, dup := canalOf[c]; dup {
				return CoLocalization{}, fmt.Errorf("component %d co-localized twice (canals %d and %d)", c, prev, i)
			}
			canalOf[c] = i
			members = append(members, c)
		}
		canals = append(canals, members)
	}
	return CoLocalization{canals: canals, canalOf: canalOf}, nil
}

// NumCanals returns the number of observation canals.
func (cl CoLocalization) NumCanals() int {
	return len(cl.canals)
}

// CanalOf returns the canal lane of a component. The boolean is false for
// components unknown to the index.
func (cl CoLocalization) CanalOf(c ComponentID) (int, bool) {
	id, ok := cl.canalOf[c]
	return id, ok
}

// CanalsOf translates a set of components into the set of canal lanes that
// must be advanced together.
func (cl CoLocalization) CanalsOf(components map[ComponentID]bool) map[int]bool {
	out := make(map[int]bool)
	for c := range components {
		if id, ok := cl.canalOf[c]; ok {
			out[id] = true
		}
	}
	return out
}

// ComponentsOf returns the components observed on a canal.
func (cl CoLocalization) ComponentsOf(canalID int) []ComponentID {
	return cl.canals[canalID]
}
