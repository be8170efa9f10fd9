package extract

import (
	"strings"

	"liquidlint/internal/sexp"
)

// splitInterpolation turns [:liquid, :interpolate, text] into static runs and
// output fragments. "\#{" is an escaped literal; "#{{code}}" is unescaped.
func splitInterpolation(node []any, _ func(any) any) (any, bool) {
	if !is(node, sexp.SymLiquid, symInterpolate) {
		return nil, false
	}
	s := textAt(node, 2)
	out := multi()
	var static strings.Builder
	flush := func() {
		if static.Len() > 0 {
			out = append(out, []any{sexp.SymStatic, static.String()})
			static.Reset()
		}
	}

	for s != "" {
		switch {
		case strings.HasPrefix(s, `\#{`):
			static.WriteString("#{")
			s = s[3:]
		case strings.HasPrefix(s, "#{"):
			end := closingBrace(s, 2)
			if end < 0 {
				static.WriteString(s)
				s = ""
				continue
			}
			flush()
			code := s[2:end]
			escape := true
			if len(code) >= 2 && code[0] == '{' && code[len(code)-1] == '}' {
				escape = false
				code = code[1 : len(code)-1]
			}
			out = append(out, []any{sexp.SymLiquid, symOutput, escape, code, multi()})
			s = s[end+1:]
		default:
			next := nextInterpolation(s)
			static.WriteString(s[:next])
			s = s[next:]
		}
	}
	flush()
	return out, true
}

// closingBrace finds the brace closing the one just before from, honouring
// nesting. It returns -1 when the braces are unbalanced.
func closingBrace(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nextInterpolation returns the offset of the next "#{" or "\#{" after the
// first byte, or len(s).
func nextInterpolation(s string) int {
	for i := 1; i < len(s); i++ {
		if strings.HasPrefix(s[i:], "#{") || strings.HasPrefix(s[i:], `\#{`) {
			return i
		}
	}
	return len(s)
}
