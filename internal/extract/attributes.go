package extract

import "liquidlint/internal/sexp"

// processAttributes replaces attribute lists by their values: code values
// become code statements, others keep their (already lowered) value.
func processAttributes(node []any, recur func(any) any) (any, bool) {
	switch {
	case is(node, sexp.SymHTML, symAttrs):
		out := multi()
		for _, e := range node[2:] {
			out = append(out, recur(e))
		}
		return out, true

	case is(node, sexp.SymHTML, symAttr) && len(node) == 4:
		if isNode(node[3], sexp.SymLiquid, symAttrValue) {
			value := node[3].([]any)
			return []any{sexp.SymCode, textAt(value, 3)}, true
		}
		return recur(node[3]), true
	}
	return nil, false
}
