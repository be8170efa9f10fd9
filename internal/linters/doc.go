// Package linters holds the concrete checks. Each file registers one check
// with the lint registry from init; importing the package for side effects
// makes them all available.
package linters

import "liquidlint/internal/sexp"

var (
	symTag     = sexp.Symbol("tag")
	symAttr    = sexp.Symbol("attr")
	symAttrs   = sexp.Symbol("attrs")
	symControl = sexp.Symbol("control")
	symOutput  = sexp.Symbol("output")
)
