package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatGolden renders issues into a stable, single-line-per-entry
// representation suitable for golden comparisons in tests:
//
//	warning TagCase views/index.liquid:3 Tag `IMG` should be written in lowercase
//
// Issues are sorted with SortIssues; an empty input yields "".
func FormatGolden(issues []Issue) string {
	if len(issues) == 0 {
		return ""
	}
	sorted := append([]Issue(nil), issues...)
	SortIssues(sorted)

	var b strings.Builder
	for i, it := range sorted {
		linter := it.Linter
		if linter == "" {
			linter = "-"
		}
		fmt.Fprintf(&b, "%s %s %s:%d %s", it.Severity, linter, normalizePath(it.File), it.Line, sanitizeMessage(it.Message))
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
