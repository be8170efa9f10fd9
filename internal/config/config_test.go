package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidlint/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultEnablesEveryLinter(t *testing.T) {
	cfg := Default()
	names := cfg.LinterNames()
	assert.Contains(t, names, "LineLength")
	assert.Contains(t, names, "CodeLint")
	for _, name := range names {
		assert.True(t, cfg.ForLinter(name).Enabled(), name)
	}
	assert.Equal(t, 80, cfg.ForLinter("LineLength").Int("max", 0))
	assert.Equal(t, 2, cfg.ForLinter("ConsecutiveControlStatements").Int("max_consecutive", 0))
	assert.Equal(t, "treesitter", cfg.ForLinter("CodeLint").String("engine", ""))
	assert.Contains(t, cfg.ForLinter("CodeLint").Strings("ignored_cops"), "Layout/LineLength")
	assert.False(t, cfg.SkipFrontmatter())
}

func TestLoadTOMLMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".liquid-lint.toml", `
exclude = "vendor/**/*.liquid"

[linters.LineLength]
max = 120
exclude = "app/views/legacy/**"

[linters.Tab]
enabled = false
severity = "error"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, []string{"vendor/**/*.liquid"}, cfg.Exclude())

	ll := cfg.ForLinter("LineLength")
	assert.True(t, ll.Enabled(), "enabled comes from defaults")
	assert.Equal(t, 120, ll.Int("max", 80))
	assert.Equal(t, []string{"app/views/legacy/**"}, ll.Exclude())

	tab := cfg.ForLinter("Tab")
	assert.False(t, tab.Enabled())
	assert.Equal(t, diag.SevError, tab.Severity())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".liquid-lint.yml", `
skip_frontmatter: true
linters:
  LineLength:
    max: 100
    include:
      - "**/*.liquid"
  Zwsp:
    enabled: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.SkipFrontmatter())
	assert.Equal(t, 100, cfg.ForLinter("LineLength").Int("max", 0))
	assert.Equal(t, []string{"**/*.liquid"}, cfg.ForLinter("LineLength").Include())
	assert.False(t, cfg.ForLinter("Zwsp").Enabled())
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad.toml":      "linters = [",
		"unknown.toml":  "colour = true",
		"notable.toml":  "linters = 3",
		"enabled.toml":  "[linters.Tab]\nenabled = \"yes\"",
		"severity.toml": "[linters.Tab]\nseverity = \"fatal\"",
		"bad.yml":       "linters: [unclosed",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name, content))
			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Contains(t, cfgErr.Error(), name)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, ".liquid-lint.yml", "linters: {}\n")
	nested := filepath.Join(root, "app", "views")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	got, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	cfg, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, want, cfg.Path())
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	cfg, err := Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.ForLinter("TagCase").Enabled())
}

func TestForUnknownLinter(t *testing.T) {
	v := Default().ForLinter("NoSuchCheck")
	assert.False(t, v.Enabled())
	assert.Equal(t, 7, v.Int("max", 7))
	assert.Nil(t, v.Include())
}

func TestDigestTracksContent(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Digest(), b.Digest())
	c := a.Set("LineLength", "max", 100)
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.Equal(t, 80, a.ForLinter("LineLength").Int("max", 0), "Set copies")
}

func TestApplyEnvOverridesEngine(t *testing.T) {
	t.Setenv(EnvCodeEngine, "rubocop")
	cfg := Default().ApplyEnv()
	assert.Equal(t, "rubocop", cfg.ForLinter("CodeLint").String("engine", ""))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", EnvRubocopConfig+"=/tmp/rubocop.yml\n")
	t.Setenv(EnvRubocopConfig, "")
	require.NoError(t, os.Unsetenv(EnvRubocopConfig))

	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "/tmp/rubocop.yml", os.Getenv(EnvRubocopConfig))

	require.NoError(t, LoadEnv(t.TempDir()), "missing .env is fine")
}
