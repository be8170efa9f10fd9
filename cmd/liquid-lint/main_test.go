package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidlint/internal/diagfmt"
)

type result struct {
	code     int
	out, err string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(append([]string{"--color", "off"}, args...), streams{
		in:  strings.NewReader(stdin),
		out: &out,
		err: &errOut,
	})
	return result{code: code, out: out.String(), err: errOut.String()}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestVersionFlags(t *testing.T) {
	r := runCLI(t, "", "--version")
	assert.Equal(t, exitOK, r.code)
	assert.True(t, strings.HasPrefix(r.out, "liquid-lint "), r.out)

	r = runCLI(t, "", "version")
	assert.Equal(t, exitOK, r.code)
	assert.True(t, strings.HasPrefix(r.out, "liquid-lint "), r.out)
}

func TestShowLintersAndReporters(t *testing.T) {
	r := runCLI(t, "", "--show-linters")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.out, "Available linters:")
	assert.Contains(t, r.out, " - TagCase\n")
	assert.Contains(t, r.out, " - CodeLint\n")

	r = runCLI(t, "", "--show-reporters")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.out, " - checkstyle\n")
}

func TestLintWarningsExitZero(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.liquid", "p \n")

	r := runCLI(t, "", "-i", "TrailingWhitespace", file)
	assert.Equal(t, exitOK, r.code, r.err)
	assert.Contains(t, r.out, file+":1 [W] TrailingWhitespace: ")
	assert.Contains(t, r.out, "1 file inspected, 1 lint detected")
}

func TestLintParseErrorExitDataErr(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.liquid", "p\n    a\n  b\n")

	r := runCLI(t, "", "-i", "Tab", "--summary=false", file)
	assert.Equal(t, exitDataErr, r.code)
	assert.Contains(t, r.out, "[E] ")
}

func TestLintSeverityOverrideFails(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.liquid", "p \n")
	cfg := writeFile(t, dir, "conf.toml", "[linters.TrailingWhitespace]\nseverity = \"error\"\n")

	r := runCLI(t, "", "-c", cfg, "-i", "TrailingWhitespace", file)
	assert.Equal(t, exitDataErr, r.code)
	assert.Contains(t, r.out, "[E] TrailingWhitespace")
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.liquid", "p\n")
	badCfg := writeFile(t, dir, "bad.toml", "linters = 3\n")

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"no files", nil, exitUsage},
		{"unknown flag", []string{"--nope", file}, exitUsage},
		{"unknown linter", []string{"-i", "Nope", file}, exitUsage},
		{"unknown reporter", []string{"-r", "html", file}, exitUsage},
		{"bad ui", []string{"--ui", "maybe", file}, exitUsage},
		{"missing file", []string{filepath.Join(dir, "missing.liquid")}, exitNoInput},
		{"no linters", []string{"-i", "Tab", "-x", "Tab", file}, exitNoInput},
		{"bad config", []string{"-c", badCfg, file}, exitConfig},
		{"missing config", []string{"-c", filepath.Join(dir, "none.toml"), file}, exitConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := runCLI(t, "", tc.args...)
			assert.Equal(t, tc.code, r.code, "stderr: %s", r.err)
			assert.NotEmpty(t, r.err)
		})
	}
}

func TestUsageHint(t *testing.T) {
	r := runCLI(t, "")
	assert.Contains(t, r.err, "no files specified")
	assert.Contains(t, r.err, "--help")
}

func TestStdinJSON(t *testing.T) {
	r := runCLI(t, "p\n\t| x\n", "--stdin-file-path", "views/x.liquid", "-i", "Tab", "-r", "json")
	require.Equal(t, exitOK, r.code, r.err)

	var got diagfmt.ReportJSON
	require.NoError(t, json.Unmarshal([]byte(r.out), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, "views/x.liquid", got.Files[0].Path)
	assert.Equal(t, 2, got.Files[0].Offenses[0].Location.Line)
	assert.Equal(t, 1, got.Summary.InspectedFileCount)
}

func TestTimingsAndTrace(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.liquid", "p\n")
	tracePath := filepath.Join(dir, "trace.ndjson")

	r := runCLI(t, "", "-i", "Tab", "--timings", "--trace", tracePath, "--trace-level", "detail", file)
	require.Equal(t, exitOK, r.code, r.err)
	assert.Contains(t, r.err, "timings:")
	assert.Contains(t, r.err, "discover")

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"file:`+file+`"`)
}

func TestExtractCommand(t *testing.T) {
	r := runCLI(t, "- if condition_true?\n  | text\n", "extract", "--map", "--prefix", "_placeholder")
	require.Equal(t, exitOK, r.code, r.err)
	assert.Equal(t, "   1:1   | if condition_true?\n   2:2   | _placeholder_0\n   3:1   | end\n", r.out)

	r = runCLI(t, "| Hello world\n", "extract", "--steps")
	require.Equal(t, exitOK, r.code, r.err)
	assert.Contains(t, r.out, "== embedded\n")
	assert.Contains(t, r.out, "== statics\n")
}

func TestParseCommand(t *testing.T) {
	r := runCLI(t, "p\n", "parse")
	require.Equal(t, exitOK, r.code, r.err)
	assert.True(t, strings.HasPrefix(r.out, "[:multi"), r.out)

	r = runCLI(t, "p\n    a\n  b\n", "parse")
	assert.Equal(t, exitDataErr, r.code)
	assert.Contains(t, r.err, ", Line ")
}

func TestClearCacheDropsResults(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	file := writeFile(t, dir, "page.liquid", "p hi \n")

	r := runCLI(t, "", "--cache", "--cache-dir", cacheDir, file)
	require.Equal(t, exitOK, r.code, r.err)
	_, err := os.Stat(filepath.Join(cacheDir, "results"))
	require.NoError(t, err)

	r = runCLI(t, "", "--clear-cache", "--cache-dir", cacheDir, "-r", "short", file)
	require.Equal(t, exitOK, r.code, r.err)
	assert.Contains(t, r.out, ":TrailingWhitespace:")
}
