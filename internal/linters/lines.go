package linters

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"liquidlint/internal/lint"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// Checks in this file look at raw source lines only. They do their work in
// the start hook and stop before any traversal.

var (
	trailingWhitespaceRe = regexp.MustCompile(`\s+$`)
	leadingTabRe         = regexp.MustCompile(`^\s*\t`)
)

func init() {
	lint.Register(lint.Descriptor{
		Name:        "LineLength",
		Description: "Lines must not exceed the configured length",
		New:         NewLineLength,
	})
	lint.Register(lint.Descriptor{
		Name:        "TrailingWhitespace",
		Description: "Lines must not end with whitespace",
		New:         NewTrailingWhitespace,
	})
	lint.Register(lint.Descriptor{
		Name:        "Tab",
		Description: "Indent with spaces, not tabs",
		New:         NewTab,
	})
	lint.Register(lint.Descriptor{
		Name:        "Zwsp",
		Description: "Source must not contain zero-width spaces",
		New:         NewZwsp,
	})
	lint.Register(lint.Descriptor{
		Name:        "EmptyLines",
		Description: "No consecutive or leading empty lines",
		New:         NewEmptyLines,
	})
	lint.Register(lint.Descriptor{
		Name:        "TrailingBlankLines",
		Description: "Files end with exactly one line break",
		New:         NewTrailingBlankLines,
	})
}

// lineCheck reports on every source line pred flags.
type lineCheck struct{ *lint.Check }

func newLineCheck(name string, cfg lint.ConfigView, pred func(line string) (string, bool)) *lineCheck {
	c := &lineCheck{lint.NewCheck(name, cfg)}
	c.Rules().OnStart(func(*sexp.Node) visitor.Result {
		for i, line := range c.Document().Lines {
			if msg, ok := pred(line); ok {
				c.ReportLine(i+1, msg)
			}
		}
		return visitor.Stop
	})
	return c
}

// NewLineLength builds the LineLength check; "max" is the allowed width.
func NewLineLength(cfg lint.ConfigView) lint.Linter {
	limit := 80
	if cfg != nil {
		limit = cfg.Int("max", limit)
	}
	return newLineCheck("LineLength", cfg, func(line string) (string, bool) {
		n := utf8.RuneCountInString(line)
		if n <= limit {
			return "", false
		}
		return fmt.Sprintf("Line is too long. [%d/%d]", n, limit), true
	})
}

// NewTrailingWhitespace builds the TrailingWhitespace check.
func NewTrailingWhitespace(cfg lint.ConfigView) lint.Linter {
	return newLineCheck("TrailingWhitespace", cfg, func(line string) (string, bool) {
		return "Line contains trailing whitespace", trailingWhitespaceRe.MatchString(line)
	})
}

// NewTab builds the Tab check.
func NewTab(cfg lint.ConfigView) lint.Linter {
	return newLineCheck("Tab", cfg, func(line string) (string, bool) {
		return "Tab detected", leadingTabRe.MatchString(line)
	})
}

// NewZwsp builds the Zwsp check.
func NewZwsp(cfg lint.ConfigView) lint.Linter {
	return newLineCheck("Zwsp", cfg, func(line string) (string, bool) {
		return "Remove zero-width space", strings.ContainsRune(line, '\u200b')
	})
}

// EmptyLines reports a blank line following another blank line or opening
// the file.
type EmptyLines struct{ *lint.Check }

// NewEmptyLines builds the EmptyLines check.
func NewEmptyLines(cfg lint.ConfigView) lint.Linter {
	c := &EmptyLines{lint.NewCheck("EmptyLines", cfg)}
	c.Rules().OnStart(func(*sexp.Node) visitor.Result {
		wasEmpty := true
		for i, line := range rawLines(c.Document().Source) {
			if strings.TrimSpace(line) != "" {
				wasEmpty = false
				continue
			}
			if wasEmpty {
				c.ReportLine(i+1, "Extra empty line detected")
			}
			wasEmpty = true
		}
		return visitor.Stop
	})
	return c
}

// TrailingBlankLines wants the file to end with a single line break.
type TrailingBlankLines struct{ *lint.Check }

// NewTrailingBlankLines builds the TrailingBlankLines check.
func NewTrailingBlankLines(cfg lint.ConfigView) lint.Linter {
	c := &TrailingBlankLines{lint.NewCheck("TrailingBlankLines", cfg)}
	c.Rules().OnStart(func(*sexp.Node) visitor.Result {
		doc := c.Document()
		if doc.Source == "" {
			return visitor.Stop
		}
		raw := rawLines(doc.Source)
		switch {
		case !strings.HasSuffix(doc.Source, "\n"):
			c.ReportLine(len(doc.Lines), "No blank line in the end of file")
		case strings.TrimSpace(raw[len(raw)-1]) == "":
			c.ReportLine(len(raw), "Multiple empty lines in the end of file")
		}
		return visitor.Stop
	})
	return c
}

// rawLines splits src after every line break, keeping a final blank line
// that Document.Lines drops.
func rawLines(src string) []string {
	lines := strings.SplitAfter(src, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
