package parser

import "liquidlint/internal/sexp"

// list is a raw list under construction. Blocks are filled after they are
// attached to their parent, so the tree is built from pointers and flattened
// into plain slices at the end.
type list struct {
	elems []any
}

func mk(elems ...any) *list {
	return &list{elems: elems}
}

func newline() *list {
	return mk(sexp.SymNewline)
}

func (l *list) push(elems ...any) {
	l.elems = append(l.elems, elems...)
}

func (l *list) insertBeforeLast(e any) {
	if len(l.elems) == 0 {
		l.elems = append(l.elems, e)
		return
	}
	last := l.elems[len(l.elems)-1]
	l.elems = append(l.elems[:len(l.elems)-1], e, last)
}

func (l *list) raw() []any {
	out := make([]any, len(l.elems))
	for i, e := range l.elems {
		if sub, ok := e.(*list); ok {
			out[i] = sub.raw()
			continue
		}
		out[i] = e
	}
	return out
}
