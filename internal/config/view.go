package config

import (
	"math"

	"liquidlint/internal/diag"
)

// View answers queries about one check's configuration table.
type View struct {
	linter string
	data   map[string]any
}

// NewView builds a view over an ad-hoc table (tests, programmatic use).
func NewView(linter string, data map[string]any) View {
	return View{linter: linter, data: data}
}

// Linter is the name of the check the view belongs to.
func (v View) Linter() string { return v.linter }

// Has reports whether key is set.
func (v View) Has(key string) bool {
	_, ok := v.data[key]
	return ok
}

// Enabled reports the "enabled" flag; missing means disabled.
func (v View) Enabled() bool { return v.Bool("enabled", false) }

// Include lists the check's include globs.
func (v View) Include() []string { return v.Strings("include") }

// Exclude lists the check's exclude globs.
func (v View) Exclude() []string { return v.Strings("exclude") }

// Severity is the configured severity, warning when unset.
func (v View) Severity() diag.Severity {
	sev, err := diag.ParseSeverity(v.String("severity", "warning"))
	if err != nil {
		return diag.SevWarning
	}
	return sev
}

func (v View) Bool(key string, def bool) bool {
	if b, ok := v.data[key].(bool); ok {
		return b
	}
	return def
}

func (v View) String(key, def string) string {
	if s, ok := v.data[key].(string); ok {
		return s
	}
	return def
}

func (v View) Int(key string, def int) int {
	switch n := v.data[key].(type) {
	case int:
		return n
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return def
		}
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func (v View) Strings(key string) []string {
	return toStrings(v.data[key])
}
