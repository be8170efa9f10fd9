package codelint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lintRuby(t *testing.T, src string) []Offense {
	t.Helper()
	offenses, err := NewTreeSitter().Lint(context.Background(), "index.liquid", src)
	require.NoError(t, err)
	return offenses
}

func cops(offenses []Offense) []string {
	out := make([]string, len(offenses))
	for i, o := range offenses {
		out[i] = o.Cop
	}
	return out
}

func TestTreeSitterCleanSource(t *testing.T) {
	src := "_liquid_lint_puts_0\nif user.admin?\n_liquid_lint_puts_1\nend\nitems.each do |i|\ni.name\nend"
	assert.Empty(t, lintRuby(t, src))
}

func TestTreeSitterDebugger(t *testing.T) {
	offenses := lintRuby(t, "_liquid_lint_puts_0\nbinding.pry\nbyebug\nfoo.pry")
	require.Len(t, offenses, 2)
	assert.Equal(t, []string{"Lint/Debugger", "Lint/Debugger"}, cops(offenses))
	assert.Equal(t, 2, offenses[0].Line)
	assert.Equal(t, "Remove debugger entry point `binding.pry`.", offenses[0].Message)
	assert.Equal(t, 3, offenses[1].Line)
}

func TestTreeSitterNilComparison(t *testing.T) {
	offenses := lintRuby(t, "a\nif user == nil\nb\nend")
	require.Len(t, offenses, 1)
	assert.Equal(t, "Style/NilComparison", offenses[0].Cop)
	assert.Equal(t, 2, offenses[0].Line)
}

func TestTreeSitterSyntaxError(t *testing.T) {
	offenses := lintRuby(t, "a = 1\nfoo(\n")
	require.NotEmpty(t, offenses)
	assert.Equal(t, "Lint/Syntax", offenses[0].Cop)
}

func TestRemap(t *testing.T) {
	in := []Offense{
		{Line: 3, Cop: "C"},
		{Line: 1, Cop: "A"},
		{Line: 9, Cop: "Unmapped"},
	}
	got := Remap(in, map[int]int{1: 4, 3: 2})
	assert.Equal(t, []Offense{{Line: 2, Cop: "C"}, {Line: 4, Cop: "A"}}, got)
}

func TestIgnore(t *testing.T) {
	in := []Offense{{Cop: "Layout/LineLength"}, {Cop: "Lint/Debugger"}}
	assert.Equal(t, []Offense{{Cop: "Lint/Debugger"}}, Ignore(in, []string{"Layout/LineLength"}))
	assert.Len(t, in, 2, "input untouched")
}

func TestNewEngine(t *testing.T) {
	e, err := New("", Options{})
	require.NoError(t, err)
	assert.Equal(t, EngineTreeSitter, e.Name())

	e, err = New(EngineRubocop, Options{RubocopConfig: "x.yml"})
	require.NoError(t, err)
	assert.Equal(t, EngineRubocop, e.Name())

	_, err = New("pylint", Options{})
	assert.Error(t, err)
}

func TestParseRubocopJSON(t *testing.T) {
	data := []byte(`{"files":[{"path":"a.rb","offenses":[
		{"cop_name":"Style/StringLiterals","message":"Prefer single quotes.","location":{"start_line":2,"line":2,"column":5}},
		{"cop_name":"Lint/UselessAssignment","message":"Useless assignment.","location":{"line":4,"column":1}}
	]}]}`)
	got, err := parseRubocopJSON(data)
	require.NoError(t, err)
	assert.Equal(t, []Offense{
		{Line: 2, Column: 5, Cop: "Style/StringLiterals", Message: "Prefer single quotes."},
		{Line: 4, Column: 1, Cop: "Lint/UselessAssignment", Message: "Useless assignment."},
	}, got)

	_, err = parseRubocopJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestRubocopMissingExecutable(t *testing.T) {
	e := NewRubocop(Options{RubocopPath: "/nonexistent/rubocop"})
	_, err := e.Lint(context.Background(), "a.liquid", "x")
	assert.Error(t, err)
}
