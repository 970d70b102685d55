// Package term implements the interaction specification language: the
// term AST (sequencing, parallel composition, alternative, loops,
// coregions, synchronous transmissions), the frontier oracle enumerating
// the next multiactions a term permits, and the rewriting function
// producing the successor term after one of them is consumed.
//
// The engine consumes this package only through its oracle interfaces; the
// AST itself is a single tagged node type because every algorithm here is
// an exhaustive case analysis over the operators.
//
// Terms are immutable: Execute and the pruning helpers always build fresh
// nodes and share unmodified subtrees.
package term
