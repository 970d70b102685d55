package engine

import (
	"fmt"

	"github.com/multitrace/sieve/internal/trace"
)

// Context is the immutable per-run analysis context: the ground-truth
// multi-trace, the co-localization index, and the domination oracle used
// for partial-order reduction.
//
// Dominance may be nil; the POR dispatch then always falls back to
// exhaustive matching.
type Context struct {
	MultiTrace trace.MultiTrace
	CoLocs     trace.CoLocalization
	Dominance  DominationOracle
}

// NewContext validates that the multi-trace and the co-localization index
// agree on the number of canals.
func NewContext(mt trace.MultiTrace, coLocs trace.CoLocalization, dominance DominationOracle) (*Context, error) {
	if len(mt) != coLocs.NumCanals() {
		return nil, fmt.Errorf("multi-trace has %d canals, co-localization index has %d", len(mt), coLocs.NumCanals())
	}
	return &Context{MultiTrace: mt, CoLocs: coLocs, Dominance: dominance}, nil
}
