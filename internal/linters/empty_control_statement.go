package linters

import (
	"strings"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// EmptyControlStatement reports "-" lines without code.
type EmptyControlStatement struct{ *lint.Check }

func init() {
	lint.Register(lint.Descriptor{
		Name:        "EmptyControlStatement",
		Description: "Control statements must contain code",
		New:         NewEmptyControlStatement,
	})
}

// NewEmptyControlStatement builds the EmptyControlStatement check.
func NewEmptyControlStatement(cfg lint.ConfigView) lint.Linter {
	c := &EmptyControlStatement{lint.NewCheck("EmptyControlStatement", cfg)}
	r := c.Rules()
	r.On(sexp.Seq(sexp.SymLiquid, symControl, r.Capture("code", nil), r.Anything()),
		func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
			if strings.TrimSpace(caps.Text("code")) == "" {
				c.Report(n, "Empty control statement can be removed")
			}
			return visitor.Continue
		})
	return c
}
