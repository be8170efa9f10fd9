package sexp

import "testing"

func tree() *Node {
	// [:multi, [:html, :tag, "p", [:html, :attrs], [:static, "a\nb"]], [:newline], [:static, "c"]]
	return ConvertNode([]any{
		SymMulti,
		[]any{SymHTML, Symbol("tag"), "p", []any{SymHTML, Symbol("attrs")}, []any{SymStatic, "a\nb"}},
		[]any{SymNewline},
		[]any{SymStatic, "c"},
	})
}

func TestMatchExactLength(t *testing.T) {
	n := tree().At(1).(*Node)
	cases := []struct {
		name string
		p    Pattern
		want bool
	}{
		{"full", Seq(SymHTML, Symbol("tag"), "p", Anything{}, Anything{}), true},
		{"prefix", Seq(SymHTML, Symbol("tag")), false},
		{"longer", Seq(SymHTML, Symbol("tag"), "p", Anything{}, Anything{}, Anything{}), false},
		{"wrong literal", Seq(SymHTML, Symbol("tag"), "div", Anything{}, Anything{}), false},
		{"symbol vs string", Seq("html", Symbol("tag"), "p", Anything{}, Anything{}), false},
		{"nested", Seq(SymHTML, Symbol("tag"), "p", []any{SymHTML, Symbol("attrs")}, Anything{}), true},
		{"nested length", Seq(SymHTML, Symbol("tag"), "p", []any{SymHTML}, Anything{}), false},
		{"nothing", Seq(SymHTML, Symbol("tag"), "p", Nothing{}, Anything{}), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(n, tc.p); got != tc.want {
				t.Errorf("Match(%s) = %v, want %v", n, got, tc.want)
			}
		})
	}
}

func TestAtomNeverMatchesSequence(t *testing.T) {
	a := NewAtom("p")
	if Match(a, Seq("p")) {
		t.Error("atom matched a sequence pattern")
	}
	if !Match(a, Lit("p")) {
		t.Error("atom did not match equal literal")
	}
	if Match(NewNode(NewAtom("p")), Lit("p")) {
		t.Error("node matched a literal")
	}
}

func TestCaptureStoresOnSuccessOnly(t *testing.T) {
	c := NewCapture(MatcherFunc(func(v Value) bool {
		a, ok := v.(*Atom)
		return ok && a.Equal("keep")
	}))
	if !c.Match(NewAtom("keep")) {
		t.Fatal("expected match")
	}
	if c.Match(NewAtom("drop")) {
		t.Fatal("unexpected match")
	}
	if got := c.Text(); got != "keep" {
		t.Errorf("Text() = %q, want %q", got, "keep")
	}

	loose := NewCapture(nil)
	loose.Match(NewAtom("first"))
	loose.Match(NewAtom("second"))
	if got := loose.Text(); got != "second" {
		t.Errorf("later match should overwrite, got %q", got)
	}
}

func TestCaptureMapReplaces(t *testing.T) {
	m := NewCaptureMap()
	first, second := NewCapture(nil), NewCapture(nil)
	m.Set("code", first)
	m.Set("other", NewCapture(nil))
	m.Set("code", second)
	got, _ := m.Get("code")
	if got != second {
		t.Error("re-registering a name should replace the entry")
	}
	if names := m.Names(); len(names) != 2 || names[0] != "code" || names[1] != "other" {
		t.Errorf("Names() = %v", names)
	}
}

func TestAnnotateLines(t *testing.T) {
	root := tree()
	Annotate(root)
	tag := root.At(1).(*Node)
	static := tag.At(4).(*Node)
	newline := root.At(2)
	last := root.At(3)
	if root.Line() != 1 || tag.Line() != 1 || static.Line() != 1 {
		t.Errorf("lines: root=%d tag=%d static=%d", root.Line(), tag.Line(), static.Line())
	}
	// "a\nb" contributes one break.
	if newline.Line() != 2 {
		t.Errorf("newline line = %d, want 2", newline.Line())
	}
	if last.Line() != 3 {
		t.Errorf("last static line = %d, want 3", last.Line())
	}

	Annotate(root)
	if last.Line() != 3 || newline.Line() != 2 {
		t.Error("second annotation changed lines")
	}
}

func TestAnnotateIgnoresSurroundingWhitespace(t *testing.T) {
	root := ConvertNode([]any{SymMulti, []any{SymStatic, "\nx\n"}, []any{SymStatic, "y"}})
	Annotate(root)
	if got := root.At(2).Line(); got != 1 {
		t.Errorf("line = %d, want 1", got)
	}
}

func TestNodeHelpers(t *testing.T) {
	n := tree()
	if n.Tag() != SymMulti {
		t.Errorf("Tag() = %q", n.Tag())
	}
	if !n.At(2).(*Node).IsNewline() {
		t.Error("expected newline marker")
	}
	if n.At(99) != nil {
		t.Error("At out of range should be nil")
	}
	if got := n.At(3).(*Node).TextAt(1); got != "c" {
		t.Errorf("TextAt = %q", got)
	}
	want := `[:static, "c"]`
	if got := n.At(3).String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
