package linters

import (
	"regexp"
	"strings"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

var spacedOutputRe = regexp.MustCompile(`[^ ] ==?<?>? [^ ]`)

// ControlStatementSpacing wants "p = x" rather than "p=x" for tag output.
type ControlStatementSpacing struct{ *lint.Check }

func init() {
	lint.Register(lint.Descriptor{
		Name:        "ControlStatementSpacing",
		Description: "Surround the `=` of tag output with spaces",
		New:         NewControlStatementSpacing,
	})
}

// NewControlStatementSpacing builds the ControlStatementSpacing check.
func NewControlStatementSpacing(cfg lint.ConfigView) lint.Linter {
	c := &ControlStatementSpacing{lint.NewCheck("ControlStatementSpacing", cfg)}
	r := c.Rules()
	a := r.Anything()
	output := sexp.Seq(sexp.SymLiquid, symOutput, a, r.Capture("ruby", nil), a)
	r.On(sexp.Seq(sexp.SymHTML, symTag, a, a, output),
		func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
			line := c.Document().Line(n.Line())
			// The code itself may contain anything; only the markup around it counts.
			line = strings.Replace(line, caps.Text("ruby"), "x", 1)
			if !spacedOutputRe.MatchString(line) {
				c.Report(n, "Please add a space before and after the `=`")
			}
			return visitor.Continue
		})
	return c
}
