package lint

import (
	"errors"
	"regexp"
	"strings"

	"liquidlint/internal/parser"
	"liquidlint/internal/sexp"
	"liquidlint/internal/source"
)

// DocumentOptions control how a template is turned into a Document.
type DocumentOptions struct {
	File            string
	SkipFrontmatter bool
	Parser          parser.Options
}

// Document is a parsed, annotated template. It is immutable once built.
type Document struct {
	File   string
	Source string
	// Lines are the source lines with trailing empty lines dropped.
	Lines []string
	Tree  *sexp.Node
	// Raw is the parser output the tree was converted from. Lowering passes
	// work on it.
	Raw []any
}

var frontmatterRe = regexp.MustCompile(`(?s)\A---\s*\n.*?\n---\s*\n`)

// NewDocument parses src. Syntax errors are returned as *ParseError.
func NewDocument(src string, opts DocumentOptions) (*Document, error) {
	if opts.SkipFrontmatter {
		src = blankFrontmatter(src)
	}
	popts := opts.Parser
	if popts.File == "" {
		popts.File = opts.File
	}
	raw, err := parser.Parse(src, popts)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Err: perr}
		}
		return nil, err
	}

	tree := sexp.ConvertNode(raw)
	sexp.Annotate(tree)
	return &Document{
		File:   opts.File,
		Source: src,
		Lines:  source.SplitLines(src),
		Tree:   tree,
		Raw:    raw,
	}, nil
}

// NewDocumentFromFile parses a loaded template.
func NewDocumentFromFile(f *source.File, opts DocumentOptions) (*Document, error) {
	if opts.File == "" {
		opts.File = f.Path
	}
	return NewDocument(f.Source(), opts)
}

// Line returns the 1-based source line, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// blankFrontmatter replaces a leading "---" block with as many empty lines,
// so reported lines still match the file.
func blankFrontmatter(src string) string {
	return frontmatterRe.ReplaceAllStringFunc(src, func(m string) string {
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
}
