// Package config loads and merges liquid-lint configuration.
//
// Configuration is a tree of tables: top-level options plus one table per
// check under "linters". Project files are written in TOML or YAML and are
// deep-merged over the embedded defaults. Checks never see the tree itself;
// they get a View of their own table.
package config

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML string

// Config is an immutable merged configuration.
type Config struct {
	path string
	data map[string]any
}

var knownTopLevel = map[string]bool{
	"skip_frontmatter": true,
	"exclude":          true,
	"include":          true,
	"linters":          true,
}

// Default returns the embedded default configuration.
func Default() *Config {
	var data map[string]any
	if _, err := toml.Decode(defaultTOML, &data); err != nil {
		panic(fmt.Errorf("embedded default config: %w", err))
	}
	cfg, err := fromMap("", data)
	if err != nil {
		panic(fmt.Errorf("embedded default config: %w", err))
	}
	return cfg
}

// FromMap validates data and wraps it without merging defaults.
func FromMap(data map[string]any) (*Config, error) {
	return fromMap("", deepCopy(data))
}

func fromMap(path string, data map[string]any) (*Config, error) {
	if data == nil {
		data = map[string]any{}
	}
	if err := validate(path, data); err != nil {
		return nil, err
	}
	normalizeLists(data)
	return &Config{path: path, data: data}, nil
}

func validate(path string, data map[string]any) error {
	for key := range data {
		if !knownTopLevel[key] {
			return errorf(path, "unknown configuration key %q", key)
		}
	}
	if v, ok := data["skip_frontmatter"]; ok {
		if _, ok := v.(bool); !ok {
			return errorf(path, "skip_frontmatter must be a boolean")
		}
	}
	raw, ok := data["linters"]
	if !ok {
		return nil
	}
	linters, ok := asMap(raw)
	if !ok {
		return errorf(path, "linters must be a table")
	}
	for name, v := range linters {
		table, ok := asMap(v)
		if !ok {
			return errorf(path, "linters.%s must be a table", name)
		}
		if e, ok := table["enabled"]; ok {
			if _, ok := e.(bool); !ok {
				return errorf(path, "linters.%s.enabled must be a boolean", name)
			}
		}
		if s, ok := table["severity"]; ok {
			if str, _ := s.(string); str != "warning" && str != "error" {
				return errorf(path, "linters.%s.severity must be \"warning\" or \"error\"", name)
			}
		}
		linters[name] = table
	}
	data["linters"] = linters
	return nil
}

// normalizeLists turns single-string include/exclude values into lists.
func normalizeLists(data map[string]any) {
	normalizeKeys(data)
	if linters, ok := asMap(data["linters"]); ok {
		for _, v := range linters {
			if table, ok := asMap(v); ok {
				normalizeKeys(table)
			}
		}
	}
}

func normalizeKeys(m map[string]any) {
	for _, key := range []string{"include", "exclude"} {
		if s, ok := m[key].(string); ok {
			m[key] = []any{s}
		}
	}
}

// Path is the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// Merge returns c with other deep-merged over it.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	path := other.path
	if path == "" {
		path = c.path
	}
	return &Config{path: path, data: merge(deepCopy(c.data), other.data)}
}

// Exclude lists the global exclude globs.
func (c *Config) Exclude() []string {
	return toStrings(c.data["exclude"])
}

// SkipFrontmatter reports whether a leading "---" block is blanked before parsing.
func (c *Config) SkipFrontmatter() bool {
	b, _ := c.data["skip_frontmatter"].(bool)
	return b
}

// LinterNames lists every check that has a table, sorted.
func (c *Config) LinterNames() []string {
	linters, _ := asMap(c.data["linters"])
	names := make([]string, 0, len(linters))
	for name := range linters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForLinter returns the view of one check's table. Unknown checks get an
// empty, disabled view.
func (c *Config) ForLinter(name string) View {
	linters, _ := asMap(c.data["linters"])
	table, _ := asMap(linters[name])
	return View{linter: name, data: table}
}

// Digest identifies the effective configuration (used in cache keys).
func (c *Config) Digest() [32]byte {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c.data); err != nil {
		return sha256.Sum256([]byte(fmt.Sprint(c.data)))
	}
	return sha256.Sum256(buf.Bytes())
}

// Set returns a copy of c with linters.<linter>.<key> replaced.
func (c *Config) Set(linter, key string, value any) *Config {
	data := deepCopy(c.data)
	linters, ok := asMap(data["linters"])
	if !ok {
		linters = map[string]any{}
	}
	table, ok := asMap(linters[linter])
	if !ok {
		table = map[string]any{}
	}
	table[key] = value
	linters[linter] = table
	data["linters"] = linters
	return &Config{path: c.path, data: data}
}

func merge(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if sm, ok := asMap(v); ok {
			if dm, ok := asMap(dst[k]); ok {
				dst[k] = merge(dm, sm)
				continue
			}
			dst[k] = deepCopy(sm)
			continue
		}
		dst[k] = v
	}
	return dst
}

func deepCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			out[k] = deepCopy(t)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
