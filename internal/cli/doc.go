// Package cli implements the sieve command line: analyze runs a
// conformance analysis of a multi-trace against a specification, validate
// checks a specification compiles, explore walks a specification's
// semantics without a trace, gen produces random specifications, and runs
// inspects stored analysis runs.
package cli
