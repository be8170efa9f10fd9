package linters

import (
	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// ConsecutiveControlStatements reports runs of one-line "-" statements that
// would read better as a ruby: block.
type ConsecutiveControlStatements struct{ *lint.Check }

func init() {
	lint.Register(lint.Descriptor{
		Name:        "ConsecutiveControlStatements",
		Description: "Merge runs of control statements into a `ruby:` filter",
		New:         NewConsecutiveControlStatements,
	})
}

// NewConsecutiveControlStatements builds the check; "max_consecutive" sets the limit.
func NewConsecutiveControlStatements(cfg lint.ConfigView) lint.Linter {
	c := &ConsecutiveControlStatements{lint.NewCheck("ConsecutiveControlStatements", cfg)}
	limit := 2
	if cfg != nil {
		limit = cfg.Int("max_consecutive", limit)
	}
	// Multis have any length, so the shape is a predicate over the whole node.
	anyMulti := sexp.Predicate{Matcher: sexp.MatcherFunc(func(v sexp.Value) bool {
		n, ok := v.(*sexp.Node)
		return ok && n.Is(sexp.SymMulti)
	})}
	c.Rules().On(anyMulti, func(n *sexp.Node, _ *sexp.CaptureMap) visitor.Result {
		forConsecutive(n.Children(), isFlatControl, limit+1, func(group []sexp.Value) {
			c.Reportf(group[0], "%d consecutive control statements can be merged into a single `ruby:` filter", len(group))
		})
		return visitor.Continue
	})
	return c
}

// isFlatControl matches [:liquid, :control, code, [:multi, [:newline]]].
func isFlatControl(v sexp.Value) bool {
	n, ok := v.(*sexp.Node)
	if !ok || n.Len() != 4 || !n.Is(sexp.SymLiquid, symControl) {
		return false
	}
	content, ok := n.At(3).(*sexp.Node)
	if !ok || content.Len() != 2 || !content.Is(sexp.SymMulti) {
		return false
	}
	nl, ok := content.At(1).(*sexp.Node)
	return ok && nl.IsNewline()
}

// forConsecutive calls fn for every maximal run of at least minLen items
// satisfying pred.
func forConsecutive(items []sexp.Value, pred func(sexp.Value) bool, minLen int, fn func([]sexp.Value)) {
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minLen {
			fn(items[start:end])
		}
		start = -1
	}
	for i, item := range items {
		if pred(item) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(items))
}
