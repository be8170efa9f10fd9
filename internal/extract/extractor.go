package extract

import (
	"fmt"
	"strings"

	"liquidlint/internal/sexp"
	"liquidlint/internal/visitor"
)

// DefaultPrefix names the placeholder statements standing for literal output.
const DefaultPrefix = "_liquid_lint_puts"

// Options configure an Extractor.
type Options struct {
	// Prefix of placeholder statements; "<prefix>_<n>". Defaults to DefaultPrefix.
	Prefix string
}

// Source is the generated pseudo source. LineMap maps every generated line
// (1-based) to the template line it came from. It must be treated as read-only.
type Source struct {
	Text    string
	LineMap map[int]int
}

// Lines splits Text into generated lines.
func (s Source) Lines() []string {
	if s.Text == "" {
		return nil
	}
	return strings.Split(s.Text, "\n")
}

// Extractor turns raw parser trees into Source. It is safe for concurrent
// use; every call builds its own rule set.
type Extractor struct {
	prefix string
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	return &Extractor{prefix: opts.Prefix}
}

// Extract lowers raw and linearises it.
func (e *Extractor) Extract(raw []any) Source {
	tree := sexp.Convert(Lower(raw))
	sexp.Annotate(tree)
	root, ok := tree.(*sexp.Node)
	if !ok {
		return Source{LineMap: map[int]int{}}
	}
	x := newExtraction(e.prefix)
	x.rules.Run(root)
	return x.source()
}

type extraction struct {
	prefix  string
	rules   *visitor.Rules
	lines   []string
	lineMap map[int]int
	outputs int
}

func newExtraction(prefix string) *extraction {
	x := &extraction{prefix: prefix, rules: visitor.New(), lineMap: map[int]int{}}
	r := x.rules
	a := r.Anything()

	r.On(sexp.Seq(sexp.SymHTML, symDoctype, a), func(n *sexp.Node, _ *sexp.CaptureMap) visitor.Result {
		x.puts(n)
		return visitor.Stop
	})
	r.On(sexp.Seq(sexp.SymHTML, symTag, a, a), x.tag)
	r.On(sexp.Seq(sexp.SymHTML, symTag, a, a, a), x.tag)
	r.On(sexp.Seq(sexp.SymStatic, a), func(n *sexp.Node, _ *sexp.CaptureMap) visitor.Result {
		x.puts(n)
		return visitor.Stop
	})
	r.On(sexp.Seq(sexp.SymDynamic, r.Capture("dynamic", nil)), func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
		x.code(caps.Text("dynamic"), n.Line())
		return visitor.Stop
	})
	r.On(sexp.Seq(sexp.SymCode, r.Capture("code", nil)), func(n *sexp.Node, caps *sexp.CaptureMap) visitor.Result {
		x.code(caps.Text("code"), n.Line())
		return visitor.Stop
	})
	r.On(sexp.Seq(sexp.SymBlock, a), x.block)
	return x
}

func (x *extraction) tag(n *sexp.Node, _ *sexp.CaptureMap) visitor.Result {
	x.puts(n)
	return visitor.Continue
}

// block emits each branch's code followed by its content, then a synthetic
// "end" on the line of the opening branch.
func (x *extraction) block(n *sexp.Node, _ *sexp.CaptureMap) visitor.Result {
	if body, ok := n.At(1).(*sexp.Node); ok {
		for _, child := range body.Children() {
			c, ok := child.(*sexp.Node)
			if !ok {
				continue
			}
			if c.Is(sexp.SymCode) && c.Len() == 3 {
				x.code(c.TextAt(1), c.Line())
				if content, ok := c.At(2).(*sexp.Node); ok {
					x.rules.Traverse(content)
				}
				continue
			}
			x.rules.Traverse(c)
		}
	}
	x.append("end", n.Line())
	return visitor.Stop
}

func (x *extraction) puts(n *sexp.Node) {
	x.append(fmt.Sprintf("%s_%d", x.prefix, x.outputs), n.Line())
	x.outputs++
}

// code emits every line of a possibly multi-line statement, each mapped to
// its own template line.
func (x *extraction) code(code string, line int) {
	if code == "" {
		return
	}
	parts := strings.Split(code, "\n")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, part := range parts {
		x.append(part, line+i)
	}
}

func (x *extraction) append(text string, line int) {
	x.lines = append(x.lines, text)
	x.lineMap[len(x.lines)] = line
}

func (x *extraction) source() Source {
	return Source{Text: strings.Join(x.lines, "\n"), LineMap: x.lineMap}
}
