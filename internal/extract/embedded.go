package extract

import (
	"strings"

	"liquidlint/internal/sexp"
)

// expandEmbedded replaces [:liquid, :embedded, engine, body, attrs] blocks.
// Ruby bodies become code statements line by line, javascript and css become
// script and style tags, other engines keep their body as text.
func expandEmbedded(node []any, recur func(any) any) (any, bool) {
	if !is(node, sexp.SymLiquid, symEmbedded) || len(node) < 4 {
		return nil, false
	}
	engine := textAt(node, 2)
	body, _ := node[3].([]any)
	var attrs any = []any{sexp.SymHTML, symAttrs}
	if len(node) > 4 {
		attrs = recur(node[4])
	}

	switch engine {
	case "ruby":
		return rubyBody(body), true
	case "javascript":
		return []any{sexp.SymHTML, symTag, "script", attrs, recur(body)}, true
	case "css":
		return []any{sexp.SymHTML, symTag, "style", attrs, recur(body)}, true
	default:
		return recur(body), true
	}
}

func rubyBody(body []any) []any {
	out := multi()
	if len(body) == 0 {
		return out
	}
	for _, e := range body[1:] {
		if isNode(e, sexp.SymLiquid, symInterpolate) {
			code := textAt(e.([]any), 2)
			if strings.TrimSpace(code) == "" {
				continue
			}
			out = append(out, []any{sexp.SymCode, strings.TrimLeft(code, "\n")})
			continue
		}
		out = append(out, e)
	}
	return out
}
