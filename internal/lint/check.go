package lint

import (
	"context"
	"fmt"

	"liquidlint/internal/diag"
	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// ConfigView is what a check reads from its configuration table.
type ConfigView interface {
	Has(key string) bool
	Enabled() bool
	Bool(key string, def bool) bool
	Int(key string, def int) int
	String(key, def string) string
	Strings(key string) []string
	Severity() diag.Severity
}

// Linter is a runnable check.
type Linter interface {
	Name() string
	Run(doc *Document) []diag.Issue
}

// ContextAware is implemented by checks that block on external work. The
// runner hands them the per-file context before Run.
type ContextAware interface {
	SetContext(ctx context.Context)
}

// Check is the base every concrete check embeds. It is not safe for
// concurrent Run calls; the registry hands out a fresh instance per document.
type Check struct {
	name     string
	ctx      context.Context
	cfg      ConfigView
	rules    *visitor.Rules
	doc      *Document
	issues   []diag.Issue
	disabled lineSet
}

// NewCheck creates a check with an empty rule set. cfg may be nil.
func NewCheck(name string, cfg ConfigView) *Check {
	return &Check{name: name, cfg: cfg, rules: visitor.New()}
}

func (c *Check) Name() string { return c.name }

// Config returns the check's configuration view.
func (c *Check) Config() ConfigView { return c.cfg }

// Rules is the rule set reactions are registered on.
func (c *Check) Rules() *visitor.Rules { return c.rules }

// SetContext sets the context of subsequent runs.
func (c *Check) SetContext(ctx context.Context) { c.ctx = ctx }

// Context is the run context, context.Background when none was set.
func (c *Check) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Document is the document of the current run.
func (c *Check) Document() *Document { return c.doc }

// Run walks doc and returns the issues reported during this run only.
func (c *Check) Run(doc *Document) []diag.Issue {
	c.doc = doc
	c.issues = nil
	c.disabled = disabledLines(doc.Lines, c.name)
	c.rules.Run(doc.Tree)
	return c.issues
}

// Report records a warning at the node's annotated line.
func (c *Check) Report(v sexp.Value, msg string) {
	c.ReportSeverity(v, diag.SevWarning, msg)
}

// Reportf is Report with formatting.
func (c *Check) Reportf(v sexp.Value, format string, args ...any) {
	c.Report(v, fmt.Sprintf(format, args...))
}

// ReportLine records a warning at an explicit line (0 when unknown).
func (c *Check) ReportLine(line int, msg string) {
	c.ReportLineSeverity(line, diag.SevWarning, msg)
}

// ReportSeverity records an issue of the given severity at the node's line.
func (c *Check) ReportSeverity(v sexp.Value, sev diag.Severity, msg string) {
	line := 0
	if v != nil {
		line = v.Line()
	}
	c.ReportLineSeverity(line, sev, msg)
}

// ReportLineSeverity records an issue of the given severity at an explicit
// line. A "severity" set in the check's configuration wins over sev.
func (c *Check) ReportLineSeverity(line int, sev diag.Severity, msg string) {
	if c.disabled.has(line) {
		return
	}
	file := ""
	if c.doc != nil {
		file = c.doc.File
	}
	issue := diag.New(c.name, file, line, msg)
	issue.Severity = sev
	if c.cfg != nil && c.cfg.Has("severity") {
		issue.Severity = c.cfg.Severity()
	}
	c.issues = append(c.issues, issue)
}
