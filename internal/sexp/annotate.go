package sexp

// Annotate stamps every value with the source line it starts on, using a
// pre-order walk from line 1. A [:newline] marker advances the counter by one,
// a string atom by the line breaks it contains; other nodes only descend.
// Running it again over the same tree assigns the same lines.
func Annotate(root Value) {
	line := 1
	var walk func(v Value)
	walk = func(v Value) {
		v.setLine(line)
		switch n := v.(type) {
		case *Atom:
			line += n.LineBreaks()
		case *Node:
			if n.IsNewline() {
				line++
				return
			}
			for _, child := range n.elems {
				walk(child)
			}
		}
	}
	walk(root)
}
