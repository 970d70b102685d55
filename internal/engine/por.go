package engine

import "github.com/multitrace/sieve/internal/trace"

// HeadAction is the next unconsumed multiaction on a canal, together with
// whether it is the canal's last. Head ids are indices into the heads slice
// handed to the domination oracle.
type HeadAction struct {
	CanalID int
	Actions trace.Multiaction
	IsLast  bool
}

// DominationOracle decides, for the POR dispatch, which head actions are
// univocal and which other head actions a univocal head dominates.
//
// Univocal means the head's enabled-ness does not depend on scheduling
// choices among the other pending actions. A univocal head that dominates
// every other head can be scheduled first without loss of generality; the
// dispatch then keeps only its successors.
//
// The oracle is an external collaborator: its internal reasoning is not
// the engine's concern, but an unsound oracle makes the reduction unsound.
// Implementations must be conservative - when in doubt, answer "not
// univocal" or "does not dominate".
type DominationOracle interface {
	// IsUnivocal reports whether the head multiaction on the given canal
	// is univocal for the current term.
	IsUnivocal(ctx *Context, t Term, canalID int, head trace.Multiaction) bool

	// HeadFrontiers associates each head id with the frontier elements the
	// term offers for it, and with the follow-up elements that become
	// enabled after it. Both maps must carry an entry for every head id.
	HeadFrontiers(usesRemovalSteps bool, ctx *Context, t Term, heads []HeadAction) (frontiers map[int][]FrontierElement, followUps map[int][]FrontierElement)

	// DominationDomain returns the set of head ids the given head
	// dominates.
	DominationDomain(usesRemovalSteps bool, ctx *Context, heads []HeadAction, followUps map[int][]FrontierElement, headID int) map[int]bool
}
