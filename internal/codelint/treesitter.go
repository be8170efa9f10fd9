package codelint

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

var (
	// debuggerCalls open a debugger when called without a receiver.
	debuggerCalls = map[string]bool{
		"byebug":                   true,
		"debugger":                 true,
		"remote_byebug":            true,
		"save_and_open_page":       true,
		"save_and_open_screenshot": true,
	}
	// bindingCalls open a debugger when called on binding.
	bindingCalls = map[string]bool{
		"pry":        true,
		"irb":        true,
		"remote_pry": true,
		"pry_remote": true,
	}
)

// TreeSitter is the built-in engine. It reports syntax errors (Lint/Syntax),
// leftover debugger calls (Lint/Debugger) and "== nil" comparisons
// (Style/NilComparison).
type TreeSitter struct{}

// NewTreeSitter creates the built-in engine.
func NewTreeSitter() *TreeSitter { return &TreeSitter{} }

func (*TreeSitter) Name() string { return EngineTreeSitter }

// Lint parses src with the Ruby grammar and walks the syntax tree.
func (*TreeSitter) Lint(ctx context.Context, _ string, src string) ([]Offense, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(ruby.GetLanguage())

	code := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	w := &walker{src: code}
	w.visit(tree.RootNode())
	return w.offenses, nil
}

type walker struct {
	src      []byte
	offenses []Offense
}

func (w *walker) visit(n *sitter.Node) {
	if n == nil {
		return
	}
	switch {
	case n.IsMissing():
		w.report(n, "Lint/Syntax", fmt.Sprintf("syntax error, missing `%s`", n.Type()))
		return
	case n.Type() == "ERROR":
		w.report(n, "Lint/Syntax", fmt.Sprintf("syntax error, unexpected `%s`", firstLine(n.Content(w.src))))
		return
	case n.Type() == "call":
		w.checkDebuggerCall(n)
	case n.Type() == "identifier" && isStatement(n):
		if name := n.Content(w.src); debuggerCalls[name] {
			w.report(n, "Lint/Debugger", fmt.Sprintf("Remove debugger entry point `%s`.", name))
		}
	case n.Type() == "binary":
		w.checkNilComparison(n)
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		w.visit(n.Child(i))
	}
}

func (w *walker) checkDebuggerCall(n *sitter.Node) {
	method := n.ChildByFieldName("method")
	if method == nil {
		return
	}
	name := method.Content(w.src)
	receiver := n.ChildByFieldName("receiver")
	switch {
	case receiver == nil && debuggerCalls[name]:
	case receiver != nil && receiver.Content(w.src) == "binding" && bindingCalls[name]:
	default:
		return
	}
	w.report(n, "Lint/Debugger", fmt.Sprintf("Remove debugger entry point `%s`.", firstLine(n.Content(w.src))))
}

func (w *walker) checkNilComparison(n *sitter.Node) {
	op := n.ChildByFieldName("operator")
	right := n.ChildByFieldName("right")
	if op == nil || right == nil || op.Type() != "==" || right.Type() != "nil" {
		return
	}
	w.report(op, "Style/NilComparison", "Prefer the use of the `nil?` predicate.")
}

func (w *walker) report(n *sitter.Node, cop, msg string) {
	pt := n.StartPoint()
	row, err := safecast.Conv[int](pt.Row)
	if err != nil {
		return
	}
	col, err := safecast.Conv[int](pt.Column)
	if err != nil {
		col = 0
	}
	w.offenses = append(w.offenses, Offense{Line: row + 1, Column: col + 1, Cop: cop, Message: msg})
}

// isStatement reports whether an identifier stands alone as a statement,
// which the grammar uses for argument-less method calls.
func isStatement(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "program", "body_statement", "then", "else", "do_block", "block_body", "begin":
		return true
	}
	return false
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
