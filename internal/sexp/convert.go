package sexp

// Convert turns the parser's raw nested lists into a tree. Slices become
// Nodes, everything else becomes an Atom. The result carries no lines yet.
func Convert(raw any) Value {
	switch v := raw.(type) {
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			elems[i] = Convert(e)
		}
		return NewNode(elems...)
	case Value:
		return v
	default:
		return NewAtom(v)
	}
}

// ConvertNode is Convert for a raw list root.
func ConvertNode(raw []any) *Node {
	return Convert(raw).(*Node)
}
