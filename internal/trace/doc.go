// Package trace defines the observable-trace data model: actions,
// multiactions, per-canal traces, the multi-trace, and the co-localization
// index mapping components to observation canals.
//
// Everything in this package is pure data. A multi-trace and its
// co-localization index are loaded once and read-only for the whole of an
// analysis run; consumption progress lives in the engine's flags, never
// here.
//
// DETERMINISM: multiactions are sets, but every serialized or printed form
// goes through Sorted(), so two equal multiactions always render
// identically.
package trace
