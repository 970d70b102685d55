package gen

import (
	"fmt"
	"math/rand"

	"github.com/multitrace/sieve/internal/term"
	"github.com/multitrace/sieve/internal/trace"
)

// Config parameterizes a Generator. Operators and Leaves are the symbol
// tables; MaxDepth bounds the operator nesting, below which only leaves are
// drawn.
type Config struct {
	Operators Probabilities
	Leaves    Probabilities
	MaxDepth  int
	Seed      int64
}

// DefaultConfig is the regular table with the default leaves and a modest
// depth budget.
func DefaultConfig(seed int64) Config {
	return Config{
		Operators: Regular(),
		Leaves:    DefaultLeaves(),
		MaxDepth:  6,
		Seed:      seed,
	}
}

// Generator produces random interaction terms over a signature's
// components. Message labels are fresh per generator ("m1", "m2", ...) and
// registered in the signature.
type Generator struct {
	cfg     Config
	sig     *trace.Signature
	rng     *rand.Rand
	nextMsg int
}

// NewGenerator builds a generator over the signature's components. The
// signature needs at least one component; coregions and broadcasts
// degenerate gracefully when there are too few.
func NewGenerator(cfg Config, sig *trace.Signature) (*Generator, error) {
	if sig.NumComponents() == 0 {
		return nil, fmt.Errorf("signature has no components")
	}
	return &Generator{
		cfg: cfg,
		sig: sig,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Generate produces one term.
func (g *Generator) Generate() *term.Interaction {
	return g.generate(g.cfg.MaxDepth)
}

func (g *Generator) generate(depth int) *term.Interaction {
	if depth <= 0 {
		return g.leaf()
	}
	switch g.cfg.Operators.Sample(g.rng) {
	case SymEmpty:
		return term.Empty()
	case SymBasic:
		return g.leaf()
	case SymStrict:
		return term.Strict(g.generate(depth-1), g.generate(depth-1))
	case SymSeq:
		return term.Seq(g.generate(depth-1), g.generate(depth-1))
	case SymCoreg:
		return term.CoRegion(g.region(), g.generate(depth-1), g.generate(depth-1))
	case SymPar:
		return term.Par(g.generate(depth-1), g.generate(depth-1))
	case SymAlt:
		return term.Alt(g.generate(depth-1), g.generate(depth-1))
	case SymLoopS:
		return term.Loop(term.LoopStrict, g.generate(depth-1))
	case SymLoopW:
		return term.Loop(term.LoopWeak, g.generate(depth-1))
	case SymLoopP:
		return term.Loop(term.LoopPar, g.generate(depth-1))
	default:
		return g.leaf()
	}
}

func (g *Generator) leaf() *term.Interaction {
	n := g.sig.NumComponents()
	msg := g.freshMessage()
	from := trace.ComponentID(g.rng.Intn(n))
	switch g.cfg.Leaves.Sample(g.rng) {
	case SymAction:
		// Emission to the environment.
		return term.Transmission(msg, from)
	case SymBroadcast:
		return term.Transmission(msg, from, g.pickOthers(from, 2)...)
	default:
		return term.Transmission(msg, from, g.pickOthers(from, 1)...)
	}
}

// pickOthers draws up to want distinct components different from the
// emitter. With a single-component signature it returns none, degrading a
// transmission to an environment emission.
func (g *Generator) pickOthers(from trace.ComponentID, want int) []trace.ComponentID {
	n := g.sig.NumComponents()
	var pool []trace.ComponentID
	for i := 0; i < n; i++ {
		if trace.ComponentID(i) != from {
			pool = append(pool, trace.ComponentID(i))
		}
	}
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if want > len(pool) {
		want = len(pool)
	}
	return pool[:want]
}

// region draws a non-empty subset of the components for a coregion.
func (g *Generator) region() []trace.ComponentID {
	n := g.sig.NumComponents()
	size := 1 + g.rng.Intn(n)
	pool := make([]trace.ComponentID, n)
	for i := range pool {
		pool[i] = trace.ComponentID(i)
	}
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:size]
}

func (g *Generator) freshMessage() string {
	g.nextMsg++
	name := fmt.Sprintf("m%d", g.nextMsg)
	g.sig.AddMessage(name)
	return name
}
