package engine

// AnalysisKind selects what the analysis accepts. It is a tagged variant
// consumed explicitly by every operation that depends on it; nothing in the
// engine infers the kind from ambient state.
type AnalysisKind int

const (
	// KindAccept requires the multi-trace to be exactly a realization of
	// the term: full consumption, no slack.
	KindAccept AnalysisKind = iota

	// KindPrefix accepts the multi-trace as a prefix of a realization.
	KindPrefix

	// KindSimulate additionally tolerates bounded simulated slack before a
	// canal's first or after its last logged multiaction.
	KindSimulate
)

func (k AnalysisKind) String() string {
	switch k {
	case KindAccept:
		return "accept"
	case KindPrefix:
		return "prefix"
	case KindSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}

// ActionCriterion controls whether the simulated-action budget is enforced.
type ActionCriterion int

const (
	// ActCritNone disables the action-count bound.
	ActCritNone ActionCriterion = iota

	// ActCritMaxNum bounds the total number of simulated actions.
	ActCritMaxNum
)

// LoopCriterion controls whether the simulated-loop-depth budget is
// enforced.
type LoopCriterion int

const (
	// LoopCritNone disables the loop-depth bound.
	LoopCritNone LoopCriterion = iota

	// LoopCritMaxDepth bounds the loop nesting depth reachable through
	// simulation.
	LoopCritMaxDepth
)

// SimulationConfig parameterizes KindSimulate.
type SimulationConfig struct {
	ActCriterion  ActionCriterion
	MaxSimActions int

	LoopCriterion   LoopCriterion
	MaxSimLoopDepth int

	// SimulateBefore permits injecting slack before a canal's first logged
	// multiaction, not only after its last.
	SimulateBefore bool
}

// Parameterization is the immutable configuration of one analysis run.
// Sim is non-nil exactly when Kind is KindSimulate.
type Parameterization struct {
	Kind AnalysisKind
	Sim  *SimulationConfig
}

// Accept builds the exact-acceptance parameterization.
func Accept() *Parameterization {
	return &Parameterization{Kind: KindAccept}
}

// Prefix builds the prefix-acceptance parameterization.
func Prefix() *Parameterization {
	return &Parameterization{Kind: KindPrefix}
}

// Simulate builds a simulating parameterization with the given bounds.
func Simulate(cfg SimulationConfig) *Parameterization {
	sim := cfg
	return &Parameterization{Kind: KindSimulate, Sim: &sim}
}

// simulateBefore reports whether before-start simulation is permitted.
func (p *Parameterization) simulateBefore() bool {
	return p.Kind == KindSimulate && p.Sim != nil && p.Sim.SimulateBefore
}

// InitialFlags builds the root flags for a run: nothing consumed, budgets
// drawn from the configuration. A disabled criterion leaves its budget at
// zero; the gate never reads it then.
func (p *Parameterization) InitialFlags(ctx *Context) *Flags {
	f := &Flags{Canals: make([]CanalFlags, len(ctx.MultiTrace))}
	if p.Kind == KindSimulate && p.Sim != nil {
		if p.Sim.ActCriterion != ActCritNone {
			f.RemSimActions = p.Sim.MaxSimActions
		}
		if p.Sim.LoopCriterion != LoopCritNone {
			f.RemSimLoopDepth = p.Sim.MaxSimLoopDepth
		}
	}
	return f
}
