package engine

// CanalFlags is the per-canal consumption state carried along an explored
// path. Consumed is the index of the next unconsumed multiaction; it is
// monotonically non-decreasing along any path and never exceeds the canal's
// length. SimulatedBefore and SimulatedAfter count the slack multiactions
// injected on this canal.
type CanalFlags struct {
	Consumed        int
	SimulatedBefore int
	SimulatedAfter  int
}

// Flags is the mutable-by-copy progress state of one analysis branch: one
// CanalFlags per canal, index-aligned with the multi-trace, plus the
// remaining run-wide simulation budgets.
//
// The budgets only ever shrink and Consumed only ever grows, which is what
// guarantees finite exploration. Branches never share a Flags value: every
// explored step derives a fresh copy via Apply.
type Flags struct {
	Canals          []CanalFlags
	RemSimActions   int
	RemSimLoopDepth int
}

// Clone returns an independent copy.
func (f *Flags) Clone() *Flags {
	canals := make([]CanalFlags, len(f.Canals))
	copy(canals, f.Canals)
	return &Flags{
		Canals:          canals,
		RemSimActions:   f.RemSimActions,
		RemSimLoopDepth: f.RemSimLoopDepth,
	}
}

// Apply derives the flags that result from taking a step: consumed canals
// advance by one multiaction, simulated canals record their slack and eat
// into the budgets. The receiver is not modified.
func (f *Flags) Apply(step Step) *Flags {
	next := f.Clone()
	for canalID := range step.Consume {
		next.Canals[canalID].Consumed++
	}
	for canalID, kind := range step.Simulate {
		switch kind {
		case SimBeforeStart:
			next.Canals[canalID].SimulatedBefore++
		case SimAfterEnd:
			next.Canals[canalID].SimulatedAfter++
		}
		next.RemSimActions--
	}
	if len(step.Simulate) > 0 && step.Frontier.MaxLoopDepth > 0 {
		next.RemSimLoopDepth--
	}
	return next
}

// IsAllConsumed reports whether every canal of the context's multi-trace
// has been consumed to its end.
func (f *Flags) IsAllConsumed(ctx *Context) bool {
	for canalID, cf := range f.Canals {
		if cf.Consumed < len(ctx.MultiTrace[canalID]) {
			return false
		}
	}
	return true
}

// HasSimulated reports whether any canal carries simulated slack.
func (f *Flags) HasSimulated() bool {
	for _, cf := range f.Canals {
		if cf.SimulatedBefore > 0 || cf.SimulatedAfter > 0 {
			return true
		}
	}
	return false
}
