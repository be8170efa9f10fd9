package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"liquidlint/internal/sexp"
)

var (
	multiSym = sexp.SymMulti
	nl       = []any{sexp.SymNewline}
)

func runPass(p pass, tree []any) any {
	return apply(p, tree)
}

func TestSplitInterpolation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []any
	}{
		{"plain", "hello", []any{multiSym, []any{sexp.SymStatic, "hello"}}},
		{"escaped", `a \#{b}`, []any{multiSym, []any{sexp.SymStatic, "a #{b}"}}},
		{
			"escaped output",
			"a #{b} c",
			[]any{multiSym,
				[]any{sexp.SymStatic, "a "},
				[]any{sexp.SymLiquid, symOutput, true, "b", []any{multiSym}},
				[]any{sexp.SymStatic, " c"},
			},
		},
		{
			"unescaped output",
			"#{{raw}}",
			[]any{multiSym, []any{sexp.SymLiquid, symOutput, false, "raw", []any{multiSym}}},
		},
		{
			"nested braces",
			"#{h({a: 1})}",
			[]any{multiSym, []any{sexp.SymLiquid, symOutput, true, "h({a: 1})", []any{multiSym}}},
		},
		{"unbalanced", "x #{y", []any{multiSym, []any{sexp.SymStatic, "x #{y"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runPass(splitInterpolation, []any{sexp.SymLiquid, symInterpolate, tc.in})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertDo(t *testing.T) {
	withContent := []any{multiSym, nl, []any{sexp.SymStatic, "x"}}
	cases := []struct {
		code    string
		content []any
		want    string
	}{
		{"items.each", withContent, "items.each do"},
		{"items.each do |i|", withContent, "items.each do |i|"},
		{"if ok", withContent, "if ok"},
		{"case x", withContent, "case x"},
		{"helper", []any{multiSym, nl}, "helper"},
	}
	for _, tc := range cases {
		got := runPass(insertDo, []any{sexp.SymLiquid, symControl, tc.code, tc.content}).([]any)
		if got[2] != tc.want {
			t.Errorf("insertDo(%q) = %q, want %q", tc.code, got[2], tc.want)
		}
	}
}

func TestGroupBlocks(t *testing.T) {
	ctrl := func(code string) []any {
		return []any{sexp.SymLiquid, symControl, code, []any{multiSym, nl}}
	}
	in := []any{multiSym,
		ctrl("if a"),
		ctrl("else"),
		nl,
		ctrl("x = 1"),
		ctrl("case y"),
		ctrl("when 1"),
		[]any{sexp.SymStatic, "s"},
		ctrl("end"),
	}
	want := []any{multiSym,
		[]any{sexp.SymLiquid, sexp.SymBlock, []any{multiSym, ctrl("if a"), ctrl("else"), nl}},
		ctrl("x = 1"),
		[]any{sexp.SymLiquid, sexp.SymBlock, []any{multiSym, ctrl("case y"), ctrl("when 1")}},
		[]any{sexp.SymStatic, "s"},
		ctrl("end"),
	}
	if diff := cmp.Diff(want, runPass(groupBlocks, in)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestGroupBlocksExplicitEnd(t *testing.T) {
	ctrl := func(code string) []any {
		return []any{sexp.SymLiquid, symControl, code, []any{multiSym, nl}}
	}
	in := []any{multiSym,
		ctrl("if a"),
		ctrl("end"),
		ctrl("y = 2"),
	}
	want := []any{multiSym,
		[]any{sexp.SymLiquid, sexp.SymBlock, []any{multiSym, ctrl("if a")}},
		[]any{multiSym, nl},
		ctrl("y = 2"),
	}
	if diff := cmp.Diff(want, runPass(groupBlocks, in)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFlattenKeepsBlockBody(t *testing.T) {
	in := []any{multiSym,
		[]any{sexp.SymBlock, []any{multiSym, []any{sexp.SymCode, "x do", []any{multiSym, []any{multiSym, nl}}}}},
	}
	want := []any{sexp.SymBlock, []any{multiSym, []any{sexp.SymCode, "x do", nl}}}
	if diff := cmp.Diff(want, runPass(flattenMultis, in)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMergeStatics(t *testing.T) {
	in := []any{multiSym,
		[]any{sexp.SymStatic, "Hello"},
		nl,
		[]any{sexp.SymStatic, "\nworld"},
		[]any{sexp.SymDynamic, "x"},
		[]any{sexp.SymStatic, "!"},
	}
	want := []any{multiSym,
		[]any{sexp.SymStatic, "Helloworld"},
		nl,
		[]any{sexp.SymDynamic, "x"},
		[]any{sexp.SymStatic, "!"},
	}
	if diff := cmp.Diff(want, runPass(mergeStatics, in)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLowerStepsNamesEveryPass(t *testing.T) {
	steps := LowerSteps([]any{multiSym})
	if len(steps) != len(pipeline) {
		t.Fatalf("got %d steps, want %d", len(steps), len(pipeline))
	}
	if steps[0].Name != "embedded" || steps[len(steps)-1].Name != "statics" {
		t.Errorf("unexpected step order: %v", steps)
	}
}
