// Package engine implements the matching and transition-generation core of
// sieve.
//
// Given a specification term and the current consumption state of each
// observation canal, the engine produces the set of sound next analysis
// steps: exact matches of frontier elements against the log, bounded
// simulation of missing prefixes/suffixes, and a partial-order reduction
// that collapses redundant branching when one canal's head action provably
// dominates the others.
//
// ARCHITECTURE:
//
// The engine is purely functional per invocation. Every call takes an
// immutable snapshot (context, term, flags) and returns a fresh step set;
// no shared mutable state, no I/O, no blocking. The outer search driver
// owns all concurrency decisions - independent branches each carry their
// own Flags copy, so parallel exploration needs no locking.
//
// The engine consumes two oracles through narrow interfaces:
//   - Term: enumerates the frontier elements the specification currently
//     permits as its next multiaction.
//   - DominationOracle: decides univocality of head actions and computes
//     domination domains for the POR short-circuit.
//
// ERROR MODEL:
//
// A frontier element with no sound resolution contributes nothing - that is
// expected control flow, not an error. Contract violations between the
// oracles and this engine (a canal targeted for both exact match and
// simulation, the simulation gate invoked outside a simulating
// parameterization) are ContractError values: unrecoverable, never
// swallowed, and they abort the analysis run.
//
// DETERMINISM:
//
// The step set is unordered by contract, but every enumeration here (canal
// scan order, power-set order, head order) is fixed, so a given input
// always yields the same step sequence. Tests and golden files rely on
// this.
package engine
