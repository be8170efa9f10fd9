package diag

// Issue is one reported problem.
type Issue struct {
	Linter   string
	File     string
	Line     int
	Message  string
	Severity Severity
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == SevError
}

// New creates a warning.
func New(linter, file string, line int, msg string) Issue {
	if line < 0 {
		line = 0
	}
	return Issue{Linter: linter, File: file, Line: line, Message: msg, Severity: SevWarning}
}

// NewError creates an error.
func NewError(linter, file string, line int, msg string) Issue {
	iss := New(linter, file, line, msg)
	iss.Severity = SevError
	return iss
}
