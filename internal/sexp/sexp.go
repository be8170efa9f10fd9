package sexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is a tag-like scalar (":html", ":tag" in the raw tree).
type Symbol string

// Common tags produced by the parser and the lowering passes.
const (
	SymMulti   Symbol = "multi"
	SymNewline Symbol = "newline"
	SymStatic  Symbol = "static"
	SymDynamic Symbol = "dynamic"
	SymCode    Symbol = "code"
	SymHTML    Symbol = "html"
	SymLiquid  Symbol = "liquid"
	SymEscape  Symbol = "escape"
	SymBlock   Symbol = "block"
)

// Value is an element of the tree: either a *Node or an *Atom.
type Value interface {
	// Line returns the annotated source line (0 before annotation).
	Line() int
	String() string
	setLine(line int)
}

// Atom is an immutable scalar leaf. Supported payloads are Symbol, string,
// bool, int and nil.
type Atom struct {
	v    any
	line int
}

// NewAtom wraps a scalar payload.
func NewAtom(v any) *Atom {
	return &Atom{v: v}
}

// Value returns the wrapped scalar.
func (a *Atom) Value() any { return a.v }

// Line implements Value.
func (a *Atom) Line() int { return a.line }

func (a *Atom) setLine(line int) { a.line = line }

// Equal reports value equality with a scalar or another atom.
func (a *Atom) Equal(v any) bool {
	if other, ok := v.(*Atom); ok {
		return a.v == other.v
	}
	return a.v == v
}

// Text returns the payload when it is a string.
func (a *Atom) Text() (string, bool) {
	s, ok := a.v.(string)
	return s, ok
}

// Symbol returns the payload when it is a Symbol.
func (a *Atom) Symbol() (Symbol, bool) {
	s, ok := a.v.(Symbol)
	return s, ok
}

// LineBreaks counts the line breaks the atom contributes to the document,
// ignoring leading and trailing whitespace.
func (a *Atom) LineBreaks() int {
	s, ok := a.v.(string)
	if !ok {
		return 0
	}
	return strings.Count(strings.TrimSpace(s), "\n")
}

func (a *Atom) String() string {
	switch v := a.v.(type) {
	case nil:
		return "nil"
	case Symbol:
		return ":" + string(v)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

// Node is a tagged ordered sequence. The first element is usually a Symbol
// atom naming the construct.
type Node struct {
	elems []Value
	line  int
}

// NewNode builds a node from already converted elements.
func NewNode(elems ...Value) *Node {
	return &Node{elems: elems}
}

// Line implements Value.
func (n *Node) Line() int { return n.line }

func (n *Node) setLine(line int) { n.line = line }

// Len is the length of the linearized node (tag included).
func (n *Node) Len() int { return len(n.elems) }

// At returns the i-th element or nil when out of range.
func (n *Node) At(i int) Value {
	if i < 0 || i >= len(n.elems) {
		return nil
	}
	return n.elems[i]
}

// Elements returns the linearized node. The slice must not be modified.
func (n *Node) Elements() []Value { return n.elems }

// Children returns every element after the tag.
func (n *Node) Children() []Value {
	if len(n.elems) == 0 {
		return nil
	}
	return n.elems[1:]
}

// Tag returns the leading symbol, or "" when the node does not start with one.
func (n *Node) Tag() Symbol {
	if len(n.elems) == 0 {
		return ""
	}
	if a, ok := n.elems[0].(*Atom); ok {
		if s, ok := a.Symbol(); ok {
			return s
		}
	}
	return ""
}

// Is reports whether the node starts with the given symbols.
func (n *Node) Is(tags ...Symbol) bool {
	if len(tags) > len(n.elems) {
		return false
	}
	for i, tag := range tags {
		a, ok := n.elems[i].(*Atom)
		if !ok || !a.Equal(tag) {
			return false
		}
	}
	return true
}

// IsNewline reports whether the node is the [:newline] marker.
func (n *Node) IsNewline() bool {
	return len(n.elems) == 1 && n.Is(SymNewline)
}

// TextAt returns the string payload of the i-th element if it is a string atom.
func (n *Node) TextAt(i int) string {
	if a, ok := n.At(i).(*Atom); ok {
		if s, ok := a.Text(); ok {
			return s
		}
	}
	return ""
}

func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range n.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
