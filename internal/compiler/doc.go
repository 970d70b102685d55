// Package compiler turns CUE specification documents into interaction
// terms. A document declares its component roster and an interaction tree
// of op-tagged structs; compilation interns the components into a
// signature and builds the AST, reporting errors with their CUE source
// positions.
package compiler
