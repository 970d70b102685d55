// Package store persists analysis runs to SQLite: one row per run and one
// row per search node, with the step that created the node serialized as
// deterministic JSON. The write path doubles as an exploration sink, so a
// run is recorded while it executes, not reconstructed afterwards.
package store
