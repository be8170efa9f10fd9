package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the project configuration files looked up, in order.
var FileNames = []string{".liquid-lint.toml", ".liquid-lint.yml", ".liquid-lint.yaml"}

// Load reads a configuration file and merges it over the defaults.
func Load(path string) (*Config, error) {
	user, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(user), nil
}

// LoadFile reads a configuration file without merging defaults. The format
// follows the extension: .toml, or .yml/.yaml.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var data map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, &Error{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
		}
	default:
		if _, err := toml.Decode(string(content), &data); err != nil {
			return nil, &Error{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
		}
	}
	return fromMap(path, data)
}

// Discover walks up from startDir looking for a project configuration file.
func Discover(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads the explicit file when given, otherwise the discovered
// project file, otherwise the defaults.
func Resolve(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Discover(startDir)
	if err != nil {
		return nil, &Error{Err: err}
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
