package extract

import (
	"strings"

	"liquidlint/internal/sexp"
)

// flattenMultis splices nested multis into their parent and unwraps
// single-element multis. The multi directly under a block keeps its wrapper
// so the block stays recognisable.
func flattenMultis(node []any, recur func(any) any) (any, bool) {
	switch {
	case is(node, sexp.SymBlock) && len(node) == 2:
		body, ok := node[1].([]any)
		if !ok || !is(body, sexp.SymMulti) {
			return nil, false
		}
		return []any{sexp.SymBlock, splice(body, recur)}, true
	case is(node, sexp.SymMulti):
		if len(node) == 2 {
			return recur(node[1]), true
		}
		return splice(node, recur), true
	}
	return nil, false
}

func splice(node []any, recur func(any) any) []any {
	out := multi()
	for _, e := range node[1:] {
		e = recur(e)
		if isNode(e, sexp.SymMulti) {
			out = append(out, e.([]any)[1:]...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// mergeStatics joins consecutive static fragments. Line markers between
// them do not break a run and are kept after the merged fragment; the line
// breaks they stand for are stripped from the following text so no line is
// counted twice.
func mergeStatics(node []any, recur func(any) any) (any, bool) {
	switch {
	case is(node, sexp.SymBlock) && len(node) == 2:
		body, ok := node[1].([]any)
		if !ok || !is(body, sexp.SymMulti) {
			return nil, false
		}
		return []any{sexp.SymBlock, mergeRun(body, recur)}, true
	case is(node, sexp.SymMulti):
		out := mergeRun(node, recur)
		if len(out) == 2 {
			return out[1], true
		}
		return out, true
	}
	return nil, false
}

func mergeRun(node []any, recur func(any) any) []any {
	out := multi()
	runAt := -1
	sawNewline := false
	for _, e := range node[1:] {
		if isNode(e, sexp.SymStatic) {
			text := staticText(e)
			if runAt >= 0 {
				if sawNewline {
					text = strings.TrimLeft(text, "\n")
				}
				merged := out[runAt].([]any)
				out[runAt] = []any{sexp.SymStatic, staticText(merged) + text}
				sawNewline = false
				continue
			}
			runAt = len(out)
			sawNewline = false
			out = append(out, []any{sexp.SymStatic, text})
			continue
		}
		out = append(out, recur(e))
		if isNode(e, sexp.SymNewline) {
			sawNewline = true
			continue
		}
		runAt = -1
	}
	return out
}

func staticText(e any) string {
	if node, ok := e.([]any); ok {
		return textAt(node, 1)
	}
	return ""
}
