// Package version holds build metadata of the liquid-lint binary.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Name is the binary name.
const Name = "liquid-lint"

// Overridden at build time via -ldflags "-X liquidlint/internal/version.Version=...".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Short returns "liquid-lint <version>" without colours.
func Short() string {
	return Name + " " + Version
}

// Banner is Short with a coloured version number (colour follows color.NoColor).
func Banner() string {
	return Name + " " + colorize(Version)
}

// Verbose adds commit, build date and toolchain lines to Banner.
func Verbose(extra ...string) string {
	var b strings.Builder
	b.WriteString(Banner())
	b.WriteByte('\n')
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	fmt.Fprintf(&b, "go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	for _, line := range extra {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func colorize(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
