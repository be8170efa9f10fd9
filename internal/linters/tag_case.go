package linters

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// TagCase wants lowercase tag names.
type TagCase struct {
	*lint.Check
	lower cases.Caser
}

func init() {
	lint.Register(lint.Descriptor{
		Name:        "TagCase",
		Description: "Tag names must be lowercase",
		New:         NewTagCase,
	})
}

// NewTagCase builds the TagCase check.
func NewTagCase(cfg lint.ConfigView) lint.Linter {
	c := &TagCase{Check: lint.NewCheck("TagCase", cfg), lower: cases.Lower(language.Und)}
	r := c.Rules()
	a := r.Anything()
	r.On(sexp.Seq(sexp.SymHTML, symTag, r.Capture("closed", nil), a), c.check("closed"))
	r.On(sexp.Seq(sexp.SymHTML, symTag, r.Capture("tag", nil), a, a), c.check("tag"))
	return c
}

func (c *TagCase) check(capture string) visitor.Reaction {
	return func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
		name := caps.Text(capture)
		if name != c.lower.String(name) {
			c.Reportf(n, "Tag `%s` should be written in lowercase", name)
		}
		return visitor.Continue
	}
}
