package explore

import (
	"math/rand"
	"sort"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

// Priorities weights the steps a node proposes. Higher-scored steps are
// explored first. A step's score is the sum of the weights of the features
// it exhibits: a lone emission or reception, a multi-component rendezvous,
// a loop instantiation, simulated slack.
type Priorities struct {
	Emission        int
	Reception       int
	MultiRendezvous int
	Loop            int
	Simulation      int
}

// DefaultPriorities prefers plain log consumption over loop unfolding and
// simulation, which keeps passing runs short.
func DefaultPriorities() Priorities {
	return Priorities{
		Emission:        2,
		Reception:       2,
		MultiRendezvous: 1,
		Loop:            -1,
		Simulation:      -2,
	}
}

// Score computes a step's weight.
func (p Priorities) Score(step engine.Step) int {
	score := 0
	acts := step.Frontier.Actions
	if len(acts) == 1 {
		for a := range acts {
			if a.Direction == trace.Emission {
				score += p.Emission
			} else {
				score += p.Reception
			}
		}
	} else if len(acts) > 1 {
		score += p.MultiRendezvous
	}
	if step.Frontier.MaxLoopDepth > 0 {
		score += p.Loop
	}
	if len(step.Simulate) > 0 {
		score += p.Simulation
	}
	return score
}

// Sort orders steps by descending score. The sort is stable: equal-score
// steps keep the engine's deterministic emission order.
func (p Priorities) Sort(steps []engine.Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		return p.Score(steps[i]) > p.Score(steps[j])
	})
}

// Shuffle randomizes step order from the given source, for randomized
// exploration experiments. Reproducible under a fixed seed.
func Shuffle(steps []engine.Step, rng *rand.Rand) {
	rng.Shuffle(len(steps), func(i, j int) {
		steps[i], steps[j] = steps[j], steps[i]
	})
}
