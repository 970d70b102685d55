package engine

import "slices"

// OkToSimulate is the simulation gate: it reports whether the frontier
// element may be resolved with simulated slack under the current budgets.
//
// Simulation is refused once the action-count criterion is active and the
// remaining simulated-action budget is exhausted, or once the loop-depth
// criterion is active and the element's loop nesting exceeds the remaining
// simulated-loop-depth budget. Both criteria must pass.
//
// Invoking the gate outside a simulating parameterization is a contract
// violation, not a soft false.
func (p *Parameterization) OkToSimulate(elt FrontierElement, flags *Flags) (bool, error) {
	if p.Kind != KindSimulate || p.Sim == nil {
		return false, newNotSimulatingError(p.Kind)
	}
	ok := true
	if p.Sim.ActCriterion != ActCritNone && flags.RemSimActions <= 0 {
		ok = false
	}
	if p.Sim.LoopCriterion != LoopCritNone && elt.MaxLoopDepth > flags.RemSimLoopDepth {
		ok = false
	}
	return ok, nil
}

// SimulationMatches produces every sound Execute step for the current term
// and flags: exact matches of frontier elements against the log, extended
// where needed (and budgeted) with simulated slack.
//
// Per frontier element:
//  1. its target components are translated to canal ids;
//  2. each canal whose head multiaction is entirely contained in the
//     still-unclaimed target actions matches exactly (all-or-nothing per
//     canal) and claims its actions;
//  3. every action still unmatched must be simulable on its owning canal -
//     after-end if the canal is fully consumed, before-start if permitted
//     and the canal has consumed nothing - or the element is rejected;
//  4. when exact matches exist and the budgets still allow simulation, one
//     extra step is emitted per non-empty subset of the matched canals
//     with that subset reclassified as simulated slack: a log action that
//     happens to coincide with an allowed action need not be the intended
//     correspondence, and every interpretation within budget is explored.
func (p *Parameterization) SimulationMatches(ctx *Context, t Term, flags *Flags) ([]Step, error) {
	var steps []Step
	for _, elt := range t.Frontier() {
		targetCanals := ctx.CoLocs.CanalsOf(elt.Components)

		// Exact-match scan, canal order fixed by the flags layout.
		var matchOnCanal []int
		okCanals := make(map[int]bool)
		leftToMatch := elt.Actions.Clone()
		for canalID := range flags.Canals {
			head := ctx.MultiTrace.At(canalID, flags.Canals[canalID].Consumed)
			if head == nil {
				continue
			}
			intersects := false
			fullyIncluded := true
			for a := range head {
				if leftToMatch.Contains(a) {
					intersects = true
				} else {
					fullyIncluded = false
				}
			}
			if intersects && fullyIncluded {
				matchOnCanal = append(matchOnCanal, canalID)
				okCanals[canalID] = true
				for a := range head {
					delete(leftToMatch, a)
				}
			}
		}

		// Resolve the remainder through simulation, or reject the element.
		toSimulate := make(map[int]SimulationStepKind)
		okToSimulate := true
		if len(leftToMatch) > 0 {
			ok, err := p.OkToSimulate(elt, flags)
			if err != nil {
				return nil, err
			}
			okToSimulate = ok
		}
		for _, act := range leftToMatch.Sorted() {
			if !okToSimulate {
				break
			}
			canalID, known := ctx.CoLocs.CanalOf(act.Component)
			if !known {
				return nil, newUnknownComponentError(int(act.Component))
			}
			if okCanals[canalID] {
				// The frontier oracle handed us an element whose actions
				// straddle a canal we already matched: upstream contract
				// breach, abort.
				return nil, newDoubleTargetError(canalID)
			}
			cf := flags.Canals[canalID]
			switch {
			case cf.Consumed == len(ctx.MultiTrace[canalID]):
				toSimulate[canalID] = SimAfterEnd
			case p.simulateBefore() && cf.Consumed == 0:
				toSimulate[canalID] = SimBeforeStart
			default:
				okToSimulate = false
			}
		}
		if !okToSimulate {
			continue
		}

		steps = append(steps, Step{
			Frontier: elt,
			Consume:  subtractCanals(targetCanals, toSimulate),
			Simulate: cloneSimMap(toSimulate),
		})

		// Power-set re-interpretation of the matched canals as slack.
		if len(matchOnCanal) > 0 {
			ok, err := p.OkToSimulate(elt, flags)
			if err != nil {
				return nil, err
			}
			if ok {
				for _, combination := range nonEmptySubsets(matchOnCanal) {
					simulateMore := cloneSimMap(toSimulate)
					feasible := true
					for _, canalID := range combination {
						cf := flags.Canals[canalID]
						switch {
						case len(ctx.MultiTrace[canalID]) == cf.Consumed:
							simulateMore[canalID] = SimAfterEnd
						case p.simulateBefore() && cf.Consumed == 0:
							simulateMore[canalID] = SimBeforeStart
						default:
							feasible = false
						}
						if !feasible {
							break
						}
					}
					if !feasible {
						continue
					}
					steps = append(steps, Step{
						Frontier: elt,
						Consume:  subtractCanals(targetCanals, simulateMore),
						Simulate: simulateMore,
					})
				}
			}
		}
	}
	return steps, nil
}

// ActionMatches produces the step set for pure trace-driven analysis: no
// simulation, full consumption of every targeted canal. With POR enabled
// it first looks for a univocal head action that dominates all other head
// actions; the first such head (in head order) short-circuits the dispatch
// and alone determines the successor set. Otherwise it falls back to
// exhaustive matching, emitting at most one step per frontier element.
func (p *Parameterization) ActionMatches(usePOR, usesRemovalSteps bool, ctx *Context, t Term, flags *Flags) ([]Step, error) {
	// Heads: next unconsumed multiaction per canal, tagged with whether it
	// is the canal's last.
	var heads []HeadAction
	for canalID, cf := range flags.Canals {
		tr := ctx.MultiTrace[canalID]
		if len(tr) > cf.Consumed {
			heads = append(heads, HeadAction{
				CanalID: canalID,
				Actions: tr[cf.Consumed],
				IsLast:  cf.Consumed == len(tr)-1,
			})
		}
	}

	if usePOR && ctx.Dominance != nil {
		var univocal []int
		for headID, h := range heads {
			if ctx.Dominance.IsUnivocal(ctx, t, h.CanalID, h.Actions) {
				univocal = append(univocal, headID)
			}
		}
		if len(univocal) > 0 {
			frontiers, followUps := ctx.Dominance.HeadFrontiers(usesRemovalSteps, ctx, t, heads)
			allHeads := make([]int, 0, len(followUps))
			for headID := range followUps {
				allHeads = append(allHeads, headID)
			}
			slices.Sort(allHeads)

			// First dominant univocal head wins; later univocal heads are
			// not consulted even if they would yield a different reduced
			// set.
			for _, headID := range univocal {
				domain := ctx.Dominance.DominationDomain(usesRemovalSteps, ctx, heads, followUps, headID)
				dominatesAll := true
				for _, other := range allHeads {
					if other != headID && !domain[other] {
						dominatesAll = false
						break
					}
				}
				if !dominatesAll {
					continue
				}
				var steps []Step
				for _, elt := range frontiers[headID] {
					steps = append(steps, Step{
						Frontier: elt,
						Consume:  ctx.CoLocs.CanalsOf(elt.Components),
						Simulate: map[int]SimulationStepKind{},
					})
				}
				return steps, nil
			}
		}
	}

	// Exhaustive fallback: first head whose multiaction equals the
	// frontier element's target set wins, one step per element at most.
	var steps []Step
	for _, elt := range t.Frontier() {
		for _, h := range heads {
			if elt.Actions.Equal(h.Actions) {
				steps = append(steps, Step{
					Frontier: elt,
					Consume:  ctx.CoLocs.CanalsOf(elt.Components),
					Simulate: map[int]SimulationStepKind{},
				})
				break
			}
		}
	}
	return steps, nil
}

func cloneSimMap(m map[int]SimulationStepKind) map[int]SimulationStepKind {
	out := make(map[int]SimulationStepKind, len(m))
	for id, kind := range m {
		out[id] = kind
	}
	return out
}

func subtractCanals(targets map[int]bool, simulated map[int]SimulationStepKind) map[int]bool {
	out := make(map[int]bool, len(targets))
	for id := range targets {
		if _, sim := simulated[id]; !sim {
			out[id] = true
		}
	}
	return out
}
