package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// EnvRubocopConfig points the rubocop engine at a configuration file.
	EnvRubocopConfig = "LIQUID_LINT_RUBOCOP_CONF"
	// EnvCodeEngine overrides linters.CodeLint.engine.
	EnvCodeEngine = "LIQUID_LINT_CODE_ENGINE"
)

// LoadEnv loads dir/.env when it exists. Variables already set in the
// process environment win.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}

// ApplyEnv returns c with environment overrides applied.
func (c *Config) ApplyEnv() *Config {
	if engine := os.Getenv(EnvCodeEngine); engine != "" {
		return c.Set("CodeLint", "engine", engine)
	}
	return c
}
