package visitor

import (
	"testing"

	"liquidlint/internal/sexp"
)

func doc() *sexp.Node {
	root := sexp.ConvertNode([]any{
		sexp.SymMulti,
		[]any{sexp.SymStatic, "a"},
		[]any{sexp.SymMulti, []any{sexp.SymStatic, "b"}, []any{sexp.SymStatic, "c"}},
		[]any{sexp.SymStatic, "d"},
	})
	sexp.Annotate(root)
	return root
}

func TestTraverseDocumentOrder(t *testing.T) {
	r := New()
	var seen []string
	r.On(sexp.Seq(sexp.SymStatic, r.Capture("text", r.Anything())), func(_ *sexp.Node, caps *sexp.CaptureMap) Result {
		seen = append(seen, caps.Text("text"))
		return Continue
	})
	r.Run(doc())
	want := []string{"a", "b", "c", "d"}
	if len(seen) != len(want) {
		t.Fatalf("seen %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen %v, want %v", seen, want)
		}
	}
}

func TestFirstMatchOnly(t *testing.T) {
	r := New()
	var first, second int
	r.On(sexp.Seq(sexp.SymStatic, sexp.Anything{}), func(*sexp.Node, *sexp.CaptureMap) Result {
		first++
		return Continue
	})
	r.On(sexp.Seq(sexp.SymStatic, sexp.Anything{}), func(*sexp.Node, *sexp.CaptureMap) Result {
		second++
		return Continue
	})
	r.Run(doc())
	if first != 4 || second != 0 {
		t.Errorf("first=%d second=%d, want 4 and 0", first, second)
	}
}

func TestStopSkipsDescendantsOnly(t *testing.T) {
	r := New()
	var seen []string
	r.On(sexp.Seq(sexp.SymMulti, sexp.Anything{}, sexp.Anything{}), func(*sexp.Node, *sexp.CaptureMap) Result {
		return Stop
	})
	r.On(sexp.Seq(sexp.SymStatic, r.Capture("text", nil)), func(_ *sexp.Node, caps *sexp.CaptureMap) Result {
		seen = append(seen, caps.Text("text"))
		return Continue
	})
	r.Run(doc())
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "d" {
		t.Errorf("seen %v, want [a d]", seen)
	}
}

func TestStartHookStopAbortsRun(t *testing.T) {
	r := New()
	fired := 0
	r.OnStart(func(*sexp.Node) Result { return Stop })
	r.On(sexp.Seq(sexp.SymStatic, sexp.Anything{}), func(*sexp.Node, *sexp.CaptureMap) Result {
		fired++
		return Continue
	})
	r.Run(doc())
	if fired != 0 {
		t.Errorf("fired %d reactions after start hook stopped", fired)
	}
}

func TestStartHookContinue(t *testing.T) {
	r := New()
	var root *sexp.Node
	r.OnStart(func(n *sexp.Node) Result {
		root = n
		return Continue
	})
	fired := 0
	r.On(sexp.Seq(sexp.SymStatic, sexp.Anything{}), func(*sexp.Node, *sexp.CaptureMap) Result {
		fired++
		return Continue
	})
	d := doc()
	r.Run(d)
	if root != d || fired != 4 {
		t.Errorf("root=%v fired=%d", root, fired)
	}
}

func TestManualDescentFromReaction(t *testing.T) {
	r := New()
	var seen []string
	r.On(sexp.Seq(sexp.SymMulti, sexp.Anything{}, sexp.Anything{}), func(n *sexp.Node, _ *sexp.CaptureMap) Result {
		seen = append(seen, "enter")
		r.TraverseChildren(n)
		seen = append(seen, "leave")
		return Stop
	})
	r.On(sexp.Seq(sexp.SymStatic, r.Capture("text", nil)), func(_ *sexp.Node, caps *sexp.CaptureMap) Result {
		seen = append(seen, caps.Text("text"))
		return Continue
	})
	r.Run(doc())
	want := "a enter b c leave d"
	got := ""
	for i, s := range seen {
		if i > 0 {
			got += " "
		}
		got += s
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
