package diagfmt

import (
	"fmt"
	"strings"

	"liquidlint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAsGiven prints paths as the runner received them.
	PathModeAsGiven PathMode = iota
	// PathModeAuto shortens long absolute paths to their basename.
	PathModeAuto
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts as-given|auto|absolute|relative|basename.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "as-given":
		return PathModeAsGiven, nil
	case "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	}
	return PathModeAsGiven, fmt.Errorf("invalid path mode %q (expected as-given|auto|absolute|relative|basename)", s)
}

// Options configure every reporter; each one reads what it needs.
type Options struct {
	Color    bool
	PathMode PathMode
	// BaseDir is used by PathModeRelative; empty means the working directory.
	BaseDir string
	// Summary appends a totals line to the default reporter.
	Summary bool
	// Tool metadata for json and sarif.
	ToolName    string
	ToolVersion string
	// Rules maps check names to descriptions for sarif.
	Rules map[string]string
}

func (o Options) path(p string) string {
	switch o.PathMode {
	case PathModeAuto:
		return source.FormatPath(p, "auto", "")
	case PathModeAbsolute:
		return source.FormatPath(p, "absolute", "")
	case PathModeRelative:
		return source.FormatPath(p, "relative", o.BaseDir)
	case PathModeBasename:
		return source.FormatPath(p, "basename", "")
	default:
		return p
	}
}

func (o Options) toolName() string {
	if o.ToolName == "" {
		return "liquid-lint"
	}
	return o.ToolName
}
