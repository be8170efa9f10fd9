// Package sexp holds the annotated template tree and the structural matching
// primitives used by checks.
//
// A tree is built once from the parser's raw nested lists (Convert), stamped
// with source lines (Annotate) and then treated as read-only. Checks describe
// the shapes they care about with Patterns: literals compared by equality,
// Matchers tested as predicates and nested sequences compared position by
// position. A Node matches a sequence only when both have the same length.
//
// Capture matchers are the one mutable piece: they remember the last value
// they matched. A Capture therefore belongs to a single rule set and must not
// be shared between goroutines.
package sexp
