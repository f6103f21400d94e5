// Package cluster models the declaratively-specified compute cluster as a
// typed resource tree.
//
// Each section owns its resolved parameters and nested sections; ownership
// is a strict tree. Sections register their validators lazily, at
// validation time, so a run always observes the tree's current state. The
// concrete shapes that exist for a given cluster are selected by the
// [Variant] capability table, not by inheritance.
//
// A tree is built once per validation or diff call from already-resolved
// input (the schema layer owns parsing and type coercion), is read-only
// during traversal, and is discarded after the call.
package cluster
