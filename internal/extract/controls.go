package extract

import (
	"regexp"

	"liquidlint/internal/sexp"
)

var (
	// doBlockRe matches code that already opens a block.
	doBlockRe = regexp.MustCompile(`(\A(if|unless|else|elsif|when|in|begin|rescue|ensure|case)\b)|\bdo\s*(\|[^|]*\|\s*)?\n?\z`)
	// openRe matches control code that needs a closing "end".
	openRe = regexp.MustCompile(`(?m)\A(if|begin|unless|case|else|elsif|when|in|rescue|ensure)\b|\bdo\s*(\|[^|]*\|)?\s*$`)
	// continueRe matches control code continuing the open chain.
	continueRe = regexp.MustCompile(`\A(else|elsif|when|in|rescue|ensure)\b`)
	// endRe matches an explicit "end" written in the template.
	endRe = regexp.MustCompile(`\Aend\s*\z`)
	// outputBlockRe matches output code whose nested content is a block body.
	outputBlockRe = regexp.MustCompile(`(?m)\A(if|unless)\b|\bdo\s*(\|[^|]*\|)?\s*$`)
)

// expandSplat turns splat attributes into code statements.
func expandSplat(node []any, _ func(any) any) (any, bool) {
	if !is(node, sexp.SymLiquid, symSplat) {
		return nil, false
	}
	return []any{sexp.SymCode, textAt(node, 2)}, true
}

// insertDo appends " do" to control and output code that has nested content
// but does not open a block by itself.
func insertDo(node []any, recur func(any) any) (any, bool) {
	var codeAt int
	switch {
	case is(node, sexp.SymLiquid, symControl) && len(node) == 4:
		codeAt = 2
	case is(node, sexp.SymLiquid, symOutput) && len(node) == 5:
		codeAt = 3
	default:
		return nil, false
	}
	out := append([]any(nil), node...)
	content := out[len(out)-1]
	code := textAt(node, codeAt)
	if !doBlockRe.MatchString(code) && !isEmpty(content) {
		out[codeAt] = code + " do"
	}
	out[len(out)-1] = recur(content)
	return out, true
}

// isEmpty reports whether exp only holds line markers.
func isEmpty(exp any) bool {
	node, ok := exp.([]any)
	if !ok {
		return false
	}
	switch {
	case is(node, sexp.SymNewline):
		return true
	case is(node, sexp.SymMulti):
		for _, e := range node[1:] {
			if !isEmpty(e) {
				return false
			}
		}
		return true
	}
	return false
}

// groupBlocks collects control chains (if/elsif/else, case/when, begin/rescue,
// "do" blocks) of every multi into [:liquid, :block, [:multi, ...]] nodes.
// An explicit "- end" closes the open chain and only its line markers survive;
// without an open chain it stays plain code.
func groupBlocks(node []any, recur func(any) any) (any, bool) {
	if !is(node, sexp.SymMulti) {
		return nil, false
	}
	out := multi()
	var chain []any
	closeChain := func() {
		if chain != nil {
			out = append(out, []any{sexp.SymLiquid, sexp.SymBlock, chain})
			chain = nil
		}
	}

	for _, e := range node[1:] {
		if isNode(e, sexp.SymLiquid, symControl) {
			ctrl := e.([]any)
			code := textAt(ctrl, 2)
			if chain != nil && len(ctrl) == 4 && endRe.MatchString(code) {
				closeChain()
				out = append(out, recur(ctrl[3]))
				continue
			}
			if chain != nil && !continueRe.MatchString(code) {
				closeChain()
			}
			if openRe.MatchString(code) {
				if chain == nil {
					chain = multi()
				}
				chain = append(chain, recur(e))
				continue
			}
			out = append(out, recur(e))
			continue
		}
		if chain != nil {
			if isNode(e, sexp.SymNewline) {
				chain = append(chain, e)
				continue
			}
			closeChain()
		}
		out = append(out, recur(e))
	}
	closeChain()
	return out, true
}

// processControls rewrites template statements into code, dynamic output and
// blocks:
//
//	[:liquid, :block, [:multi, controls...]] -> [:block, [:multi, [:code, code, content]...]]
//	[:liquid, :control, code, content]        -> [:multi, [:code, code], content]
//	[:liquid, :output, esc, code, content]    -> [:block, ...] when code opens a block,
//	                                             [:multi, [:dynamic, code], content] otherwise
//	[:liquid, :text, kind, content]           -> content
func processControls(node []any, recur func(any) any) (any, bool) {
	switch {
	case is(node, sexp.SymLiquid, sexp.SymBlock) && len(node) == 3:
		chain, _ := node[2].([]any)
		body := multi()
		for _, e := range chain[1:] {
			if isNode(e, sexp.SymLiquid, symControl) {
				ctrl := e.([]any)
				body = append(body, []any{sexp.SymCode, textAt(ctrl, 2), recur(ctrl[3])})
				continue
			}
			body = append(body, recur(e))
		}
		return []any{sexp.SymBlock, body}, true

	case is(node, sexp.SymLiquid, symControl) && len(node) == 4:
		return multi([]any{sexp.SymCode, textAt(node, 2)}, recur(node[3])), true

	case is(node, sexp.SymLiquid, symOutput) && len(node) == 5:
		code := textAt(node, 3)
		if outputBlockRe.MatchString(code) {
			return []any{sexp.SymBlock, multi([]any{sexp.SymCode, code, recur(node[4])})}, true
		}
		return multi([]any{sexp.SymDynamic, code}, recur(node[4])), true

	case is(node, sexp.SymLiquid, symText) && len(node) == 4:
		return recur(node[3]), true
	}
	return nil, false
}
