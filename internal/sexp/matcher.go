package sexp

// Matcher answers whether a value matches.
type Matcher interface {
	Match(v Value) bool
}

// Anything matches every value.
type Anything struct{}

func (Anything) Match(Value) bool { return true }

// Nothing matches no value.
type Nothing struct{}

func (Nothing) Match(Value) bool { return false }

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(v Value) bool

func (f MatcherFunc) Match(v Value) bool { return f(v) }

// Capture wraps a matcher and remembers the last value it accepted. A failed
// match leaves the stored value untouched.
type Capture struct {
	inner Matcher
	value Value
}

// NewCapture wraps inner; a nil inner behaves like Anything.
func NewCapture(inner Matcher) *Capture {
	if inner == nil {
		inner = Anything{}
	}
	return &Capture{inner: inner}
}

// Match implements Matcher.
func (c *Capture) Match(v Value) bool {
	if !c.inner.Match(v) {
		return false
	}
	c.value = v
	return true
}

// Value returns the last matched value, or nil.
func (c *Capture) Value() Value { return c.value }

// Text returns the last matched value as a string when it is a string atom.
func (c *Capture) Text() string {
	if a, ok := c.value.(*Atom); ok {
		if s, ok := a.Text(); ok {
			return s
		}
	}
	return ""
}
