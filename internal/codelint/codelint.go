// Package codelint runs a Ruby code linter over extracted template code.
//
// Two engines exist: a built-in one on tree-sitter's Ruby grammar with a
// small set of cops, and one that shells out to rubocop. Offense lines refer
// to the generated source and are remapped to template lines with Remap.
package codelint

import (
	"context"
	"fmt"
	"sort"
)

// Offense is one finding on the generated source.
type Offense struct {
	Line    int
	Column  int
	Cop     string
	Message string
}

// Engine lints a standalone Ruby source unit. file only names the unit.
type Engine interface {
	Name() string
	Lint(ctx context.Context, file, src string) ([]Offense, error)
}

// Options configure engine construction.
type Options struct {
	// RubocopPath is the rubocop executable; "rubocop" when empty.
	RubocopPath string
	// RubocopConfig is passed as --config when set.
	RubocopConfig string
}

const (
	EngineTreeSitter = "treesitter"
	EngineRubocop    = "rubocop"
)

// New builds the named engine.
func New(name string, opts Options) (Engine, error) {
	switch name {
	case "", EngineTreeSitter:
		return NewTreeSitter(), nil
	case EngineRubocop:
		return NewRubocop(opts), nil
	}
	return nil, fmt.Errorf("unknown code lint engine %q", name)
}

// Remap rewrites offense lines through lineMap and drops offenses on lines
// with no template counterpart, such as synthetic block terminators that
// were not mapped.
func Remap(offenses []Offense, lineMap map[int]int) []Offense {
	out := make([]Offense, 0, len(offenses))
	for _, o := range offenses {
		line, ok := lineMap[o.Line]
		if !ok {
			continue
		}
		o.Line = line
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Ignore drops offenses raised by the given cops.
func Ignore(offenses []Offense, cops []string) []Offense {
	if len(cops) == 0 {
		return offenses
	}
	skip := make(map[string]bool, len(cops))
	for _, c := range cops {
		skip[c] = true
	}
	out := offenses[:0:0]
	for _, o := range offenses {
		if !skip[o.Cop] {
			out = append(out, o)
		}
	}
	return out
}
