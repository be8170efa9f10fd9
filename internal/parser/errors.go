package parser

import "fmt"

// Error is a template syntax error.
type Error struct {
	Message string
	File    string
	// Source is the offending line as written.
	Source string
	Line   int
	Column int
}

func (e *Error) Error() string {
	file := e.File
	if file == "" {
		file = "(__TEMPLATE__)"
	}
	return fmt.Sprintf("%s\n  %s, Line %d, Column %d\n    %s", e.Message, file, e.Line, e.Column, e.Source)
}
