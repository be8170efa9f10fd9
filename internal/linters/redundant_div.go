package linters

import (
	"regexp"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

var explicitDivRe = regexp.MustCompile(`\bdiv[#.]`)

// RedundantDiv reports "div.x" and "div#x" where ".x" and "#x" suffice.
type RedundantDiv struct{ *lint.Check }

func init() {
	lint.Register(lint.Descriptor{
		Name:        "RedundantDiv",
		Description: "Omit `div` when a class or id shortcut is present",
		New:         NewRedundantDiv,
	})
}

// NewRedundantDiv builds the RedundantDiv check.
func NewRedundantDiv(cfg lint.ConfigView) lint.Linter {
	c := &RedundantDiv{lint.NewCheck("RedundantDiv", cfg)}
	r := c.Rules()
	attrs := r.Capture("attrs", sexp.MatcherFunc(func(v sexp.Value) bool {
		n, ok := v.(*sexp.Node)
		return ok && n.Is(sexp.SymHTML, symAttrs)
	}))
	r.On(sexp.Seq(sexp.SymHTML, symTag, "div", attrs, r.Anything()),
		func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
			list, _ := caps.Value("attrs").(*sexp.Node)
			first, ok := list.At(2).(*sexp.Node)
			if !ok || !first.Is(sexp.SymHTML, symAttr) {
				return visitor.Continue
			}
			name := first.TextAt(2)
			value, ok := first.At(3).(*sexp.Node)
			if !ok || !value.Is(sexp.SymStatic) || (name != "id" && name != "class") {
				return visitor.Continue
			}
			if !explicitDivRe.MatchString(c.Document().Line(n.Line())) {
				return visitor.Continue
			}
			c.Reportf(n, "`div` is redundant when %s attribute shortcut is present", name)
			return visitor.Continue
		})
	return c
}
