package lint

import (
	"regexp"
	"strings"
)

// Templates may switch checks off for a range of lines:
//
//	/ liquid-lint:disable TagCase LineLength
//	...
//	/ liquid-lint:enable TagCase LineLength
//
// A disable without a matching enable lasts until the end of the file.
var configCommentRe = regexp.MustCompile(`^\s*/\s*liquid-lint:(disable|enable)\s+(.+?)\s*$`)

type lineSet map[int]struct{}

func (s lineSet) has(line int) bool {
	_, ok := s[line]
	return ok
}

// disabledLines computes, per run, the lines on which name is switched off.
func disabledLines(lines []string, name string) lineSet {
	var set lineSet
	disabled := false
	for i, line := range lines {
		lineNo := i + 1
		if m := configCommentRe.FindStringSubmatch(line); m != nil && mentions(m[2], name) {
			disabled = m[1] == "disable"
		}
		if disabled {
			if set == nil {
				set = lineSet{}
			}
			set[lineNo] = struct{}{}
		}
	}
	return set
}

func mentions(list, name string) bool {
	for _, f := range strings.FieldsFunc(list, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' }) {
		if f == name {
			return true
		}
	}
	return false
}
