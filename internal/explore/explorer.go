package explore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/multitrace/sieve/internal/engine"
	"github.com/multitrace/sieve/internal/term"
)

// Node is one state of the search graph: an interaction term paired with
// the consumption flags of the path that reached it. Step is the edge that
// created the node; it is nil for the root.
type Node struct {
	ID        int
	ParentID  int
	Term      *term.Interaction
	Flags     *engine.Flags
	Depth     int
	LoopDepth int
	Step      *engine.Step
}

// Sink observes an analysis run. The explorer calls Node for every node it
// creates, in creation order, and Done exactly once with the final report.
type Sink interface {
	Node(n *Node) error
	Done(r *Report) error
}

// Report summarizes an analysis run.
type Report struct {
	Spec          string                  `json:"spec,omitempty"`
	Kind          string                  `json:"kind"`
	Strategy      string                  `json:"strategy"`
	Verdict       Verdict                 `json:"verdict"`
	NodesCreated  int                     `json:"nodes_created"`
	NodesExplored int                     `json:"nodes_explored"`
	StepsEmitted  int                     `json:"steps_emitted"`
	Eliminations  map[EliminationKind]int `json:"eliminations,omitempty"`
	PassNodeID    int                     `json:"pass_node_id,omitempty"`
}

// Explorer runs the analysis search. The zero value is not usable; Params
// is required, everything else has working defaults.
type Explorer struct {
	Params     *engine.Parameterization
	UsePOR     bool
	Strategy   Strategy
	Priorities Priorities
	Filters    []Filter
	Sinks      []Sink
	Logger     *slog.Logger
	SpecName   string
}

// Analyze searches for a realization of the multi-trace in ectx against
// the root term and returns the best verdict reached. A Pass
// short-circuits the search; cancellation of ctx aborts it.
func (e *Explorer) Analyze(ctx context.Context, ectx *engine.Context, root *term.Interaction) (*Report, error) {
	lg := e.Logger
	if lg == nil {
		lg = slog.Default()
	}
	report := &Report{
		Spec:         e.SpecName,
		Kind:         e.Params.Kind.String(),
		Strategy:     e.Strategy.String(),
		Verdict:      VerdictFail,
		Eliminations: map[EliminationKind]int{},
		PassNodeID:   -1,
	}
	lg.Info("analysis started",
		"spec", e.SpecName,
		"kind", report.Kind,
		"strategy", report.Strategy,
		"canals", len(ectx.MultiTrace),
		"trace_length", ectx.MultiTrace.TotalLength(),
	)

	rootNode := &Node{
		ID:       0,
		ParentID: -1,
		Term:     root,
		Flags:    e.Params.InitialFlags(ectx),
	}
	if err := e.emit(rootNode); err != nil {
		return nil, err
	}
	report.NodesCreated = 1

	worklist := []*Node{rootNode}
	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := e.pop(&worklist)
		report.NodesExplored++

		if node.Flags.IsAllConsumed(ectx) {
			verdict, final := e.verdictFor(node)
			report.Verdict = maxVerdict(report.Verdict, verdict)
			if final {
				report.PassNodeID = node.ID
				return e.finish(lg, report)
			}
		}

		steps, err := e.propose(ectx, node)
		if err != nil {
			return nil, err
		}
		report.StepsEmitted += len(steps)
		e.Priorities.Sort(steps)

		for i := range steps {
			step := steps[i]
			child, elim, err := e.child(node, step, report.NodesCreated)
			if err != nil {
				return nil, err
			}
			if elim != "" {
				report.Eliminations[elim]++
				continue
			}
			report.NodesCreated++
			if err := e.emit(child); err != nil {
				return nil, err
			}
			worklist = append(worklist, child)
		}
	}

	if report.Verdict == VerdictFail && len(report.Eliminations) > 0 {
		// Every failing branch may have been cut short; the search says
		// nothing definitive.
		report.Verdict = VerdictInconclusive
	}
	if len(report.Eliminations) == 0 {
		report.Eliminations = nil
	}
	return e.finish(lg, report)
}

// verdictFor classifies a fully consumed node. The boolean reports whether
// the verdict is final, i.e. short-circuits the search.
func (e *Explorer) verdictFor(node *Node) (Verdict, bool) {
	if node.Flags.HasSimulated() {
		return VerdictWeakPass, false
	}
	if e.Params.Kind == engine.KindAccept && !node.Term.AcceptsEmpty() {
		// The log is consumed but the term still demands actions; this
		// branch is not an exact realization.
		return VerdictFail, false
	}
	return VerdictPass, true
}

func (e *Explorer) propose(ectx *engine.Context, node *Node) ([]engine.Step, error) {
	if e.Params.Kind == engine.KindSimulate {
		steps, err := e.Params.SimulationMatches(ectx, node.Term, node.Flags)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node.ID, err)
		}
		return steps, nil
	}
	steps, err := e.Params.ActionMatches(e.UsePOR, false, ectx, node.Term, node.Flags)
	if err != nil {
		return nil, fmt.Errorf("node %d: %w", node.ID, err)
	}
	return steps, nil
}

func (e *Explorer) child(parent *Node, step engine.Step, nodesCreated int) (*Node, EliminationKind, error) {
	childDepth := parent.Depth + 1
	childLoop := parent.LoopDepth + step.Frontier.MaxLoopDepth
	crit := FilterCriterion{
		Depth:     childDepth,
		LoopDepth: childLoop,
		NodeCount: nodesCreated + 1,
	}
	for _, f := range e.Filters {
		if kind, cut := f.Eliminates(crit); cut {
			return nil, kind, nil
		}
	}
	succ, err := parent.Term.Execute(step.Frontier)
	if err != nil {
		return nil, "", fmt.Errorf("node %d: executing step: %w", parent.ID, err)
	}
	return &Node{
		ID:        nodesCreated,
		ParentID:  parent.ID,
		Term:      succ,
		Flags:     parent.Flags.Apply(step),
		Depth:     childDepth,
		LoopDepth: childLoop,
		Step:      &step,
	}, "", nil
}

// pop removes and returns the next node per the strategy.
func (e *Explorer) pop(worklist *[]*Node) *Node {
	wl := *worklist
	idx := 0
	switch e.Strategy {
	case StrategyDFS:
		idx = len(wl) - 1
	case StrategyHCS:
		best := -1
		for i, n := range wl {
			c := consumedTotal(n.Flags)
			if c > best || (c == best && n.ID < wl[idx].ID) {
				best = c
				idx = i
			}
		}
	}
	node := wl[idx]
	*worklist = append(wl[:idx], wl[idx+1:]...)
	return node
}

func consumedTotal(f *engine.Flags) int {
	total := 0
	for _, cf := range f.Canals {
		total += cf.Consumed
	}
	return total
}

func (e *Explorer) emit(n *Node) error {
	for _, s := range e.Sinks {
		if err := s.Node(n); err != nil {
			return fmt.Errorf("sink: %w", err)
		}
	}
	return nil
}

func (e *Explorer) finish(lg *slog.Logger, report *Report) (*Report, error) {
	lg.Info("analysis finished",
		"spec", report.Spec,
		"verdict", report.Verdict.String(),
		"nodes_explored", report.NodesExplored,
		"nodes_created", report.NodesCreated,
	)
	for _, s := range e.Sinks {
		if err := s.Done(report); err != nil {
			return nil, fmt.Errorf("sink: %w", err)
		}
	}
	return report, nil
}
