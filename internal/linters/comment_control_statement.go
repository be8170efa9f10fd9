package linters

import (
	"regexp"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

var (
	codeCommentRe      = regexp.MustCompile(`(?s)\A\s*#(.*)\z`)
	commentDirectiveRe = regexp.MustCompile(`\A\s*(rubocop:\w+|Template Dependency:)`)
)

// CommentControlStatement prefers "/ comment" over "-# comment".
type CommentControlStatement struct{ *lint.Check }

func init() {
	lint.Register(lint.Descriptor{
		Name:        "CommentControlStatement",
		Description: "Use template comments instead of code comments in control statements",
		New:         NewCommentControlStatement,
	})
}

// NewCommentControlStatement builds the CommentControlStatement check.
func NewCommentControlStatement(cfg lint.ConfigView) lint.Linter {
	c := &CommentControlStatement{lint.NewCheck("CommentControlStatement", cfg)}
	r := c.Rules()
	r.On(sexp.Seq(sexp.SymLiquid, symControl, r.Capture("code", nil), r.Anything()),
		func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
			m := codeCommentRe.FindStringSubmatch(caps.Text("code"))
			if m == nil {
				return visitor.Continue
			}
			comment := m[1]
			// Directives for other tools have to stay code comments.
			if commentDirectiveRe.MatchString(comment) {
				return visitor.Continue
			}
			c.Reportf(n, "Liquid code comments (`/%s`) are preferred over control statement comments (`-#%s`)", comment, comment)
			return visitor.Continue
		})
	return c
}
