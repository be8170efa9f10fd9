// Package visitor implements the rule engine checks are built on: an ordered
// list of (pattern, reaction) registrations walked depth-first over a tree.
package visitor

import "liquidlint/internal/sexp"

// Result tells the engine how to continue after a reaction.
type Result uint8

const (
	// Continue descends into the node's children.
	Continue Result = iota
	// Stop skips the node's children. From a start hook it aborts the run.
	Stop
)

// Reaction runs when a registration's pattern matches n.
type Reaction func(n *sexp.Node, caps *sexp.CaptureMap) Result

// StartHook runs once on the root before traversal.
type StartHook func(root *sexp.Node) Result

type registration struct {
	pattern sexp.Pattern
	react   Reaction
}

// Rules holds registrations, an optional start hook and the captures the
// registrations refer to. A Rules value is not safe for concurrent Run calls
// because captures are mutated while matching.
type Rules struct {
	regs     []registration
	start    StartHook
	captures *sexp.CaptureMap
}

// New creates an empty rule set.
func New() *Rules {
	return &Rules{captures: sexp.NewCaptureMap()}
}

// On registers a reaction for nodes matching p. Registration order decides
// which reaction fires when several patterns match the same node.
func (r *Rules) On(p sexp.Pattern, fn Reaction) {
	r.regs = append(r.regs, registration{pattern: p, react: fn})
}

// OnStart sets the hook run before traversal, replacing any previous one.
func (r *Rules) OnStart(fn StartHook) {
	r.start = fn
}

// Anything returns a matcher accepting every value.
func (r *Rules) Anything() sexp.Matcher {
	return sexp.Anything{}
}

// Capture wraps m in a capture registered under name. The returned matcher is
// meant to be embedded in a pattern passed to On.
func (r *Rules) Capture(name string, m sexp.Matcher) *sexp.Capture {
	c := sexp.NewCapture(m)
	r.captures.Set(name, c)
	return c
}

// Captures exposes the capture registry.
func (r *Rules) Captures() *sexp.CaptureMap {
	return r.captures
}

// Len is the number of registrations.
func (r *Rules) Len() int {
	return len(r.regs)
}

// Run invokes the start hook and, unless it stops, traverses root.
func (r *Rules) Run(root *sexp.Node) {
	if root == nil {
		return
	}
	if r.start != nil && r.start(root) == Stop {
		return
	}
	r.Traverse(root)
}

// Traverse fires the first matching reaction for n and then visits its
// children unless the reaction returned Stop.
func (r *Rules) Traverse(n *sexp.Node) {
	for _, reg := range r.regs {
		if !sexp.Match(n, reg.pattern) {
			continue
		}
		if reg.react(n, r.captures) == Stop {
			return
		}
		break
	}
	r.TraverseChildren(n)
}

// TraverseChildren visits the node children of n in order.
func (r *Rules) TraverseChildren(n *sexp.Node) {
	for _, child := range n.Children() {
		if c, ok := child.(*sexp.Node); ok {
			r.Traverse(c)
		}
	}
}
