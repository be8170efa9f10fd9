package sexp

// Pattern describes a shape to look for. The set of variants is closed:
// Literal, Predicate and Nested.
type Pattern interface {
	matches(v Value) bool
}

// Literal matches an atom whose payload equals Value.
type Literal struct {
	Value any
}

// Predicate matches whatever its Matcher accepts.
type Predicate struct {
	Matcher Matcher
}

// Nested matches a node of exactly len(Elems) elements, position by position.
type Nested struct {
	Elems []Pattern
}

func (p Literal) matches(v Value) bool {
	a, ok := v.(*Atom)
	if !ok {
		return false
	}
	return a.Equal(p.Value)
}

func (p Predicate) matches(v Value) bool {
	return p.Matcher.Match(v)
}

func (p Nested) matches(v Value) bool {
	n, ok := v.(*Node)
	if !ok || len(n.elems) != len(p.Elems) {
		return false
	}
	for i, sub := range p.Elems {
		if !sub.matches(n.elems[i]) {
			return false
		}
	}
	return true
}

// Match reports whether v has the shape described by p.
func Match(v Value, p Pattern) bool {
	if v == nil || p == nil {
		return false
	}
	return p.matches(v)
}

// Lit builds a literal pattern.
func Lit(v any) Pattern {
	if a, ok := v.(*Atom); ok {
		return Literal{Value: a.v}
	}
	return Literal{Value: v}
}

// Seq builds a sequence pattern. Elements may be Patterns, Matchers, []any
// (nested sequences) or scalars (literals).
func Seq(elems ...any) Pattern {
	out := make([]Pattern, len(elems))
	for i, e := range elems {
		out[i] = toPattern(e)
	}
	return Nested{Elems: out}
}

func toPattern(e any) Pattern {
	switch v := e.(type) {
	case Pattern:
		return v
	case Matcher:
		return Predicate{Matcher: v}
	case []any:
		return Seq(v...)
	default:
		return Lit(v)
	}
}
