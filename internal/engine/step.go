package engine

import (
	"fmt"
	"slices"
)

// SimulationStepKind marks that a canal's contribution to a step is not
// drawn from the real log but injected as slack.
type SimulationStepKind int

const (
	// SimBeforeStart injects slack before the canal's first logged
	// multiaction. Only legal while the canal has consumed nothing.
	SimBeforeStart SimulationStepKind = iota

	// SimAfterEnd injects slack after the canal's last logged multiaction.
	// Only legal once the canal is fully consumed.
	SimAfterEnd
)

func (k SimulationStepKind) String() string {
	if k == SimBeforeStart {
		return "before-start"
	}
	return "after-end"
}

// Step is an Execute analysis step: one frontier element together with the
// decision, per targeted canal, of whether its contribution is consumed
// from the real log or simulated.
//
// INVARIANT (partition): Consume and the key set of Simulate are disjoint
// and their union is exactly the canal set implied by the frontier
// element's components through the co-localization index.
type Step struct {
	Frontier FrontierElement
	Consume  map[int]bool
	Simulate map[int]SimulationStepKind
}

// Canals returns the union of consumed and simulated canal ids.
func (s Step) Canals() map[int]bool {
	out := make(map[int]bool, len(s.Consume)+len(s.Simulate))
	for id := range s.Consume {
		out[id] = true
	}
	for id := range s.Simulate {
		out[id] = true
	}
	return out
}

// CheckPartition validates the partition invariant against a context.
// The engine only ever emits steps that satisfy it; this is the check the
// property tests and the store's write path run.
func (s Step) CheckPartition(ctx *Context) error {
	for id := range s.Consume {
		if _, simulated := s.Simulate[id]; simulated {
			return fmt.Errorf("canal %d both consumed and simulated", id)
		}
	}
	implied := ctx.CoLocs.CanalsOf(s.Frontier.Components)
	union := s.Canals()
	if len(union) != len(implied) {
		return fmt.Errorf("step covers %d canals, frontier element implies %d", len(union), len(implied))
	}
	for id := range implied {
		if !union[id] {
			return fmt.Errorf("canal %d implied by frontier element but not covered", id)
		}
	}
	return nil
}

// SortedConsume returns the consumed canal ids in ascending order.
func (s Step) SortedConsume() []int {
	out := make([]int, 0, len(s.Consume))
	for id := range s.Consume {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SortedSimulate returns the simulated canal ids in ascending order.
func (s Step) SortedSimulate() []int {
	out := make([]int, 0, len(s.Simulate))
	for id := range s.Simulate {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
