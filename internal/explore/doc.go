// Package explore drives the analysis search over the graph whose nodes
// are (interaction term, consumption flags) pairs and whose edges are the
// steps proposed by the matching engine.
//
// ARCHITECTURE
//
// The explorer owns the worklist and nothing else: the engine proposes
// steps, filters cut children, priorities order a node's steps, the
// strategy picks the next node, and sinks observe everything. Verdicts are
// a total order (Fail < Inconclusive < WeakPass < Pass); a Pass
// short-circuits the search.
//
// DETERMINISM
//
// With a fixed strategy, priority table and input, the node visit order
// and the report are fully reproducible: step ordering is a stable sort
// over engine-emitted order, and worklist ties break on node id.
package explore
