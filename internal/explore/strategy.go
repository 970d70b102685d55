package explore

import "fmt"

// Strategy selects which frontier node of the worklist is explored next.
type Strategy int

const (
	// StrategyBFS explores nodes in creation order.
	StrategyBFS Strategy = iota

	// StrategyDFS explores the most recently created node first.
	StrategyDFS

	// StrategyHCS is greedy high-coverage search: the node whose flags
	// have consumed the most multiactions is explored first, ties broken
	// by creation order.
	StrategyHCS
)

func (s Strategy) String() string {
	switch s {
	case StrategyDFS:
		return "DFS"
	case StrategyHCS:
		return "HCS"
	default:
		return "BFS"
	}
}

// ParseStrategy resolves a strategy name, case-sensitively.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "BFS", "bfs":
		return StrategyBFS, nil
	case "DFS", "dfs":
		return StrategyDFS, nil
	case "HCS", "hcs":
		return StrategyHCS, nil
	default:
		return StrategyBFS, fmt.Errorf("unknown strategy %q (want BFS, DFS or HCS)", name)
	}
}
