package extract

import "liquidlint/internal/sexp"

var (
	symTag         = sexp.Symbol("tag")
	symAttrs       = sexp.Symbol("attrs")
	symAttr        = sexp.Symbol("attr")
	symDoctype     = sexp.Symbol("doctype")
	symComment     = sexp.Symbol("comment")
	symCondComment = sexp.Symbol("condcomment")
	symControl     = sexp.Symbol("control")
	symOutput      = sexp.Symbol("output")
	symText        = sexp.Symbol("text")
	symInterpolate = sexp.Symbol("interpolate")
	symAttrValue   = sexp.Symbol("attrvalue")
	symSplat       = sexp.Symbol("splat")
	symEmbedded    = sexp.Symbol("embedded")
)

// pass rewrites the nodes it recognises and reports false for the rest,
// which are then rebuilt with their children passed through recur.
type pass func(node []any, recur func(any) any) (any, bool)

// apply runs p over the whole tree. The input is never modified.
func apply(p pass, exp any) any {
	var recur func(any) any
	recur = func(e any) any {
		node, ok := e.([]any)
		if !ok {
			return e
		}
		if out, handled := p(node, recur); handled {
			return out
		}
		return descend(node, recur)
	}
	return recur(exp)
}

// descend copies node and recurses into the positions that hold subtrees.
func descend(node []any, recur func(any) any) []any {
	out := append([]any(nil), node...)
	at := func(i int) {
		if i < len(out) {
			out[i] = recur(out[i])
		}
	}
	switch {
	case is(node, sexp.SymMulti):
		for i := 1; i < len(out); i++ {
			at(i)
		}
	case is(node, sexp.SymHTML, symAttrs):
		for i := 2; i < len(out); i++ {
			at(i)
		}
	case is(node, sexp.SymHTML, symTag):
		at(3)
		at(4)
	case is(node, sexp.SymHTML, symAttr), is(node, sexp.SymHTML, symCondComment):
		at(3)
	case is(node, sexp.SymHTML, symComment), is(node, sexp.SymEscape):
		at(2)
	case is(node, sexp.SymLiquid, symControl), is(node, sexp.SymLiquid, symText):
		at(3)
	case is(node, sexp.SymLiquid, symOutput):
		at(4)
	case is(node, sexp.SymLiquid, symEmbedded):
		at(3)
		at(4)
	case is(node, sexp.SymLiquid, sexp.SymBlock):
		at(2)
	case is(node, sexp.SymBlock):
		at(1)
	case is(node, sexp.SymCode):
		at(2)
	}
	return out
}

func is(node []any, tags ...sexp.Symbol) bool {
	if len(node) < len(tags) {
		return false
	}
	for i, tag := range tags {
		s, ok := node[i].(sexp.Symbol)
		if !ok || s != tag {
			return false
		}
	}
	return true
}

func isNode(e any, tags ...sexp.Symbol) bool {
	node, ok := e.([]any)
	return ok && is(node, tags...)
}

func textAt(node []any, i int) string {
	if i < len(node) {
		if s, ok := node[i].(string); ok {
			return s
		}
	}
	return ""
}

func multi(elems ...any) []any {
	return append([]any{sexp.SymMulti}, elems...)
}
