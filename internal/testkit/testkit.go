// Package testkit holds helpers for check tests.
package testkit

import (
	"strings"
	"testing"

	"liquidlint/internal/config"
	"liquidlint/internal/diag"
	"liquidlint/internal/lint"
)

// Normalize strips the common indentation of a raw string literal and a
// single leading line break, so templates can be written inline:
//
//	testkit.Normalize(`
//	  p
//	    | text
//	`)
func Normalize(src string) string {
	src = strings.TrimPrefix(src, "\n")
	lines := strings.Split(src, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// Run parses src and runs the named check with its default configuration.
func Run(t testing.TB, name string, factory lint.Factory, src string) []diag.Issue {
	t.Helper()
	return RunWith(t, factory, config.Default().ForLinter(name), src)
}

// RunWith parses src and runs the check built from cfg.
func RunWith(t testing.TB, factory lint.Factory, cfg lint.ConfigView, src string) []diag.Issue {
	t.Helper()
	doc, err := lint.NewDocument(src, lint.DocumentOptions{File: "test.liquid"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return factory(cfg).Run(doc)
}

// Lines returns the reported lines in order.
func Lines(issues []diag.Issue) []int {
	out := make([]int, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Line)
	}
	return out
}

// ExpectLines fails the test unless issues are reported on exactly lines.
func ExpectLines(t testing.TB, issues []diag.Issue, lines ...int) {
	t.Helper()
	got := Lines(issues)
	if len(got) != len(lines) {
		t.Fatalf("reported lines %v, want %v (%v)", got, lines, issues)
	}
	for i := range got {
		if got[i] != lines[i] {
			t.Fatalf("reported lines %v, want %v (%v)", got, lines, issues)
		}
	}
}
