package diag

import "fmt"

// Severity defines the importance of an issue.
type Severity uint8

const (
	// SevWarning is the default severity of a check.
	SevWarning Severity = iota
	// SevError fails the run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// Mark is the one-letter form used by the default reporter.
func (s Severity) Mark() string {
	if s == SevError {
		return "E"
	}
	return "W"
}

// ParseSeverity accepts "warning" and "error".
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevWarning, fmt.Errorf("unknown severity %q", s)
}
