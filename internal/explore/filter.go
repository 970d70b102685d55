package explore

import "fmt"

// EliminationKind names the filter that cut a child node.
type EliminationKind string

const (
	ElimMaxProcessDepth      EliminationKind = "max_process_depth"
	ElimMaxLoopInstantiation EliminationKind = "max_loop_instantiation"
	ElimMaxNodeNumber        EliminationKind = "max_node_number"
)

// FilterCriterion is the measure of a candidate child node at the moment a
// filter is consulted: its depth in the search graph, the number of loop
// instantiations on its path, and the total number of nodes the run would
// have created with it.
type FilterCriterion struct {
	Depth     int
	LoopDepth int
	NodeCount int
}

// Filter decides whether a candidate child node is cut from the search.
// Filters act on the search graph only; the matching engine never sees
// them.
type Filter interface {
	// Eliminates reports whether the candidate is cut, and under which
	// kind.
	Eliminates(crit FilterCriterion) (EliminationKind, bool)
	String() string
}

// MaxProcessDepth cuts nodes deeper than n steps from the root.
type MaxProcessDepth int

func (f MaxProcessDepth) Eliminates(crit FilterCriterion) (EliminationKind, bool) {
	return ElimMaxProcessDepth, crit.Depth > int(f)
}

func (f MaxProcessDepth) String() string {
	return fmt.Sprintf("max process depth %d", int(f))
}

// MaxLoopInstantiation cuts paths that have unfolded more than n loop
// instances.
type MaxLoopInstantiation int

func (f MaxLoopInstantiation) Eliminates(crit FilterCriterion) (EliminationKind, bool) {
	return ElimMaxLoopInstantiation, crit.LoopDepth > int(f)
}

func (f MaxLoopInstantiation) String() string {
	return fmt.Sprintf("max loop instantiation %d", int(f))
}

// MaxNodeNumber caps the total number of nodes a run may create.
type MaxNodeNumber int

func (f MaxNodeNumber) Eliminates(crit FilterCriterion) (EliminationKind, bool) {
	return ElimMaxNodeNumber, crit.NodeCount > int(f)
}

func (f MaxNodeNumber) String() string {
	return fmt.Sprintf("max node number %d", int(f))
}
