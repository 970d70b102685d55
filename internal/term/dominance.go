package term

import (
	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/trace"
)

// Dominance is the default domination oracle for partial-order reduction.
//
// It is deliberately conservative: every answer errs towards "not
// univocal" / "does not dominate", so the reduction fires less often than
// a finer analysis would allow but never unsoundly.
type Dominance struct{}

var _ engine.DominationOracle = Dominance{}

// IsUnivocal reports whether the head multiaction on the canal is the only
// multiaction the term can offer that canal: every frontier element
// touching one of the canal's components must carry exactly the head
// multiaction. Then no scheduling choice elsewhere can change whether the
// head is enabled.
func (Dominance) IsUnivocal(ctx *engine.Context, t engine.Term, canalID int, head trace.Multiaction) bool {
	canalComps := make(map[trace.ComponentID]bool)
	for _, c := range ctx.CoLocs.ComponentsOf(canalID) {
		canalComps[c] = true
	}
	sawHead := false
	for _, elt := range t.Frontier() {
		touches := false
		for c := range elt.Components {
			if canalComps[c] {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}
		if !elt.Actions.Equal(head) {
			return false
		}
		sawHead = true
	}
	return sawHead
}

// HeadFrontiers associates each head with the frontier elements matching
// its multiaction, and with the follow-up elements enabled after executing
// one of them.
func (Dominance) HeadFrontiers(usesRemovalSteps bool, ctx *engine.Context, t engine.Term, heads []engine.HeadAction) (map[int][]engine.FrontierElement, map[int][]engine.FrontierElement) {
	frontiers := make(map[int][]engine.FrontierElement, len(heads))
	followUps := make(map[int][]engine.FrontierElement, len(heads))
	inter, _ := t.(*Interaction)
	all := t.Frontier()
	for headID, h := range heads {
		var frts []engine.FrontierElement
		for _, elt := range all {
			if elt.Actions.Equal(h.Actions) {
				frts = append(frts, elt)
			}
		}
		frontiers[headID] = frts

		var fol []engine.FrontierElement
		if inter != nil {
			for _, elt := range frts {
				succ, err := inter.Execute(elt)
				if err != nil {
					continue
				}
				fol = append(fol, succ.Frontier()...)
			}
		}
		followUps[headID] = fol
	}
	return frontiers, followUps
}

// DominationDomain returns the heads the given head dominates. A head
// dominates another when their multiactions share no component and the
// head survives the other's execution unchanged: among the other's
// follow-ups, every element touching the head's components carries exactly
// the head's multiaction, and at least one does. The two orderings then
// commute and the head may be scheduled first without loss of generality.
func (Dominance) DominationDomain(usesRemovalSteps bool, ctx *engine.Context, heads []engine.HeadAction, followUps map[int][]engine.FrontierElement, headID int) map[int]bool {
	domain := make(map[int]bool)
	headActs := heads[headID].Actions
	headComps := headActs.Components()
	for other := range heads {
		if other == headID {
			continue
		}
		if componentsOverlap(headComps, heads[other].Actions.Components()) {
			continue
		}
		survives := false
		unchanged := true
		for _, elt := range followUps[other] {
			if !componentsOverlap(headComps, elt.Components) {
				continue
			}
			if !elt.Actions.Equal(headActs) {
				unchanged = false
				break
			}
			survives = true
		}
		if survives && unchanged {
			domain[other] = true
		}
	}
	return domain
}

func componentsOverlap(a, b map[trace.ComponentID]bool) bool {
	for c := range a {
		if b[c] {
			return true
		}
	}
	return false
}
