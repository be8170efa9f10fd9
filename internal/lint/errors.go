package lint

import (
	"errors"
	"fmt"
	"strings"

	"liquidlint/internal/diag"
	"liquidlint/internal/parser"
)

// ErrNoLinters is returned when the selection leaves no check to run.
var ErrNoLinters = errors.New("no linters specified: all linters are disabled or excluded")

// NoSuchLinterError reports unknown check names passed on the command line.
type NoSuchLinterError struct {
	Names []string
}

func (e *NoSuchLinterError) Error() string {
	return fmt.Sprintf("no such linter: %s", strings.Join(e.Names, ", "))
}

// ParseError wraps a template syntax error. The parser's fields are kept as is.
type ParseError struct {
	Err *parser.Error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Issue renders the failure as the single error-severity issue recorded for
// the document. It carries no linter identity.
func (e *ParseError) Issue(file string) diag.Issue {
	if file == "" {
		file = e.Err.File
	}
	return diag.NewError("", file, e.Err.Line, e.Err.Message)
}
