// Package parser turns indentation-based template text into a nested raw
// list tree.
//
// Every list starts with a symbol naming the construct:
//
//	[:multi, ...]                              sequence
//	[:newline]                                 end of a source line
//	[:static, text]                            literal output
//	[:html, :tag, name, attrs, content?]       element
//	[:html, :attrs, attr...]                   attribute list
//	[:html, :attr, name, value]                attribute
//	[:html, :doctype, kind]
//	[:html, :comment, content]
//	[:html, :condcomment, condition, content]
//	[:escape, escape?, content]
//	[:liquid, :control, code, content]         "- code"
//	[:liquid, :output, escape?, code, content] "= code"
//	[:liquid, :text, :verbatim|:inline, content]
//	[:liquid, :interpolate, text]              text with #{} sequences
//	[:liquid, :attrvalue, escape?, code]
//	[:liquid, :splat, code]
//	[:liquid, :embedded, engine, body, attrs]
//
// No line numbers are attached; consumers count [:newline] markers instead.
package parser

import (
	"regexp"
	"strings"

	"liquidlint/internal/sexp"
)

var (
	symTag         = sexp.Symbol("tag")
	symAttrs       = sexp.Symbol("attrs")
	symAttr        = sexp.Symbol("attr")
	symDoctype     = sexp.Symbol("doctype")
	symComment     = sexp.Symbol("comment")
	symCondComment = sexp.Symbol("condcomment")
	symControl     = sexp.Symbol("control")
	symOutput      = sexp.Symbol("output")
	symText        = sexp.Symbol("text")
	symVerbatim    = sexp.Symbol("verbatim")
	symInline      = sexp.Symbol("inline")
	symInterpolate = sexp.Symbol("interpolate")
	symAttrValue   = sexp.Symbol("attrvalue")
	symSplat       = sexp.Symbol("splat")
	symEmbedded    = sexp.Symbol("embedded")
)

var (
	condCommentRe   = regexp.MustCompile(`^/\[\s*(.*?)\s*\]\s*$`)
	outputRe        = regexp.MustCompile(`^=(=?)(['<>]*)`)
	tagOutputRe     = regexp.MustCompile(`^\s*=(=?)(['<>]*)`)
	doctypeRe       = regexp.MustCompile(`^doctype\b`)
	tagNameRe       = regexp.MustCompile(`^[\p{L}\p{N}_](?:[\p{L}\p{N}_:-]*[\p{L}\p{N}_])?`)
	attrShortcutRe  = regexp.MustCompile(`^([.#]+)((?:[\p{L}\p{N}_]|-|/\d+|:[\w-]+)*)`)
	whitespaceMods  = regexp.MustCompile(`^[<>']*`)
	blockExpandRe   = regexp.MustCompile(`^\s*:\s*`)
	closedTagRe     = regexp.MustCompile(`^\s*/\s*`)
	attrListOpenRe  = regexp.MustCompile(`^\s*([(\[{])`)
	quotedAttrRe    = regexp.MustCompile(`^\s*([^\x00\s"'></=()\[\]{}]+)\s*=(=?)\s*("|')`)
	codeAttrRe      = regexp.MustCompile(`^\s*([^\x00\s"'></=()\[\]{}]+)\s*=(=?)\s*`)
	booleanAttrRe   = regexp.MustCompile(`^\s*([^\x00\s"'></=()\[\]{}]+)`)
	splatAttrPrefix = regexp.MustCompile(`^\s*\*`)
)

// Parse parses src into a raw tree rooted at a [:multi] list.
func Parse(src string, opts Options) (tree []any, err error) {
	p := newParser(opts.withDefaults())
	root := mk(sexp.SymMulti)
	p.lines = splitLines(src)
	p.stacks = []*list{root}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			tree, err = nil, perr
		}
	}()

	for p.nextLine() {
		p.parseLine()
	}
	return root.raw(), nil
}

type parser struct {
	opts       Options
	embeddedRe *regexp.Regexp

	lines    []string
	line     string
	origLine string
	lineno   int

	indents []int
	stacks  []*list
}

func newParser(opts Options) *parser {
	names := make([]string, len(opts.Engines))
	for i, e := range opts.Engines {
		names[i] = regexp.QuoteMeta(e)
	}
	return &parser{
		opts:       opts,
		embeddedRe: regexp.MustCompile(`^(` + strings.Join(names, "|") + `)(?:\s+(.*?))?:(\s*)`),
	}
}

// splitLines splits on line breaks and drops trailing empty lines.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *parser) nextLine() bool {
	if len(p.lines) == 0 {
		p.line, p.origLine = "", ""
		return false
	}
	p.origLine = p.lines[0]
	p.lines = p.lines[1:]
	p.lineno++
	p.line = p.origLine
	return true
}

func (p *parser) expectNextLine() {
	if !p.nextLine() {
		p.syntaxError("Unexpected end of file")
	}
	p.line = strings.TrimSpace(p.line)
}

func (p *parser) syntaxError(msg string) {
	col := len(p.origLine) - len(p.line)
	if col < 0 {
		col = 0
	}
	panic(&Error{
		Message: msg,
		File:    p.opts.File,
		Source:  p.origLine,
		Line:    p.lineno,
		Column:  col,
	})
}

func (p *parser) top() *list {
	return p.stacks[len(p.stacks)-1]
}

func (p *parser) pushStack(l *list) {
	p.stacks = append(p.stacks, l)
}

func (p *parser) popStack() {
	p.stacks = p.stacks[:len(p.stacks)-1]
}

func (p *parser) lastIndent() int {
	return p.indents[len(p.indents)-1]
}

// indentOf measures leading blanks, expanding tabs to the next tab stop.
func (p *parser) indentOf(line string) int {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += p.opts.TabSize - width%p.opts.TabSize
		default:
			return width
		}
	}
	return width
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\r\n\f\v") == ""
}

func (p *parser) parseLine() {
	if isBlank(p.line) {
		p.top().push(newline())
		return
	}

	indent := p.indentOf(p.line)
	if len(p.indents) == 0 {
		p.indents = append(p.indents, indent)
	}
	p.line = strings.TrimLeft(p.line, " \t\r\n\f\v")

	// Больше стеков, чем отступов: предыдущая строка ждёт вложенный блок.
	expecting := len(p.stacks) > len(p.indents)

	if indent > p.lastIndent() {
		if !expecting {
			p.syntaxError("Unexpected indentation")
		}
		p.indents = append(p.indents, indent)
	} else {
		if expecting {
			p.popStack()
		}
		for indent < p.lastIndent() && len(p.indents) > 1 {
			p.indents = p.indents[:len(p.indents)-1]
			p.popStack()
		}
		if indent != p.lastIndent() {
			p.syntaxError("Malformed indentation")
		}
	}

	p.parseLineIndicators()
}

func (p *parser) parseLineIndicators() {
	switch {
	case strings.HasPrefix(p.line, "/!"):
		rest, sp := cutSpace(p.line[2:])
		text := p.parseTextBlock(rest, p.lastIndent()+sp+2)
		p.top().push(mk(sexp.SymHTML, symComment, mk(sexp.SymLiquid, symText, symVerbatim, text)))

	case condCommentRe.MatchString(p.line):
		m := condCommentRe.FindStringSubmatch(p.line)
		block := mk(sexp.SymMulti)
		p.top().push(mk(sexp.SymHTML, symCondComment, m[1], block))
		p.pushStack(block)

	case strings.HasPrefix(p.line, "/"):
		p.parseCommentBlock()

	case strings.HasPrefix(p.line, "|"), strings.HasPrefix(p.line, "'"):
		trailing := p.line[0] == '\''
		rest, sp := cutSpace(p.line[1:])
		text := p.parseTextBlock(rest, p.lastIndent()+sp+1)
		p.top().push(mk(sexp.SymLiquid, symText, symVerbatim, text))
		if trailing {
			p.top().push(mk(sexp.SymStatic, " "))
		}

	case strings.HasPrefix(p.line, "<"):
		block := mk(sexp.SymMulti)
		p.top().push(mk(sexp.SymMulti, mk(sexp.SymLiquid, symInterpolate, p.line), block))
		p.pushStack(block)

	case strings.HasPrefix(p.line, "-"):
		p.line = p.line[1:]
		block := mk(sexp.SymMulti)
		p.top().push(mk(sexp.SymLiquid, symControl, p.parseBrokenLine(), block))
		p.pushStack(block)

	case outputRe.MatchString(p.line):
		m := outputRe.FindStringSubmatch(p.line)
		p.line = p.line[len(m[0]):]
		trailing := strings.ContainsAny(m[2], ">'")
		block := mk(sexp.SymMulti)
		if strings.Contains(m[2], "<") {
			p.top().push(mk(sexp.SymStatic, " "))
		}
		p.top().push(mk(sexp.SymLiquid, symOutput, m[1] == "", p.parseBrokenLine(), block))
		if trailing {
			p.top().push(mk(sexp.SymStatic, " "))
		}
		p.pushStack(block)

	case p.embeddedRe.MatchString(p.line):
		p.top().push(p.parseEmbedded())

	case doctypeRe.MatchString(p.line):
		p.top().push(mk(sexp.SymHTML, symDoctype, strings.TrimSpace(p.line[len("doctype"):])))

	default:
		tag, ok := p.matchTag()
		if !ok {
			p.syntaxError("Unknown line indicator")
		}
		p.parseTag(tag)
	}
	p.top().push(newline())
}

// cutSpace drops one optional leading space and reports how many were dropped.
func cutSpace(s string) (string, int) {
	if strings.HasPrefix(s, " ") {
		return s[1:], 1
	}
	return s, 0
}

// matchTag recognises the start of an element. Named tags are consumed from
// the line; shortcuts and splats are left for parseTag and parseAttributes.
func (p *parser) matchTag() (string, bool) {
	if p.line == "" {
		return "", false
	}
	switch c := p.line[0]; {
	case c == '.' || c == '#':
		return string(c), true
	case c == '*' && len(p.line) > 1 && !isBlank(p.line[1:2]):
		return "*", true
	}
	name := tagNameRe.FindString(p.line)
	if name == "" {
		return "", false
	}
	p.line = p.line[len(name):]
	return name, true
}

func (p *parser) parseEmbedded() *list {
	m := p.embeddedRe.FindStringSubmatch(p.line)
	engine, attrText := m[1], m[2]
	rest := p.line[len(m[0]):]
	col := len(p.origLine) - len(rest)

	attrs := mk(sexp.SymHTML, symAttrs)
	p.line = attrText
	p.parseAttributes(attrs)

	body := p.parseTextBlock(rest, col)
	return mk(sexp.SymLiquid, symEmbedded, engine, body, attrs)
}

func (p *parser) parseCommentBlock() {
	for len(p.lines) > 0 && (isBlank(p.lines[0]) || p.indentOf(p.lines[0]) > p.lastIndent()) {
		p.nextLine()
		p.top().push(newline())
	}
}

func (p *parser) parseTextBlock(firstLine string, textIndent int) *list {
	result := mk(sexp.SymMulti)
	indentSet := firstLine != ""
	if indentSet {
		result.push(mk(sexp.SymLiquid, symInterpolate, firstLine))
	}

	emptyLines := 0
	for len(p.lines) > 0 {
		if isBlank(p.lines[0]) {
			p.nextLine()
			result.push(newline())
			if indentSet {
				emptyLines++
			}
			continue
		}

		indent := p.indentOf(p.lines[0])
		if indent <= p.lastIndent() {
			break
		}

		if emptyLines > 0 {
			result.push(mk(sexp.SymLiquid, symInterpolate, strings.Repeat("\n", emptyLines)))
			emptyLines = 0
		}

		p.nextLine()
		p.line = strings.TrimLeft(p.line, " \t")

		// Строки блока должны иметь отступ не меньше первой строки.
		offset := 0
		prefix := ""
		if indentSet {
			offset = indent - textIndent
			if offset < 0 {
				textIndent += offset
				offset = 0
			}
			prefix = "\n"
		}
		result.push(newline(), mk(sexp.SymLiquid, symInterpolate, prefix+strings.Repeat(" ", offset)+p.line))

		if !indentSet {
			textIndent = indent
			indentSet = true
		}
	}
	return result
}

// parseBrokenLine reads code that continues on the next line when it ends
// with a comma or a backslash.
func (p *parser) parseBrokenLine() string {
	broken := strings.TrimSpace(p.line)
	for strings.HasSuffix(broken, ",") || strings.HasSuffix(broken, `\`) {
		p.expectNextLine()
		broken += "\n" + p.line
	}
	return broken
}

func (p *parser) parseTag(tag string) {
	if _, ok := attrShortcuts[tag]; ok {
		tag = p.opts.DefaultTag
	}

	attrs := mk(sexp.SymHTML, symAttrs)
	for {
		m := attrShortcutRe.FindStringSubmatch(p.line)
		if m == nil {
			break
		}
		name, ok := attrShortcuts[m[1]]
		if !ok {
			p.syntaxError("Illegal shortcut")
		}
		attrs.push(mk(sexp.SymHTML, symAttr, name, mk(sexp.SymStatic, m[2])))
		p.line = p.line[len(m[0]):]
	}

	mods := whitespaceMods.FindString(p.line)
	p.line = p.line[len(mods):]
	trailing := strings.ContainsAny(mods, ">'")
	leading := strings.Contains(mods, "<")

	p.parseAttributes(attrs)

	node := mk(sexp.SymHTML, symTag, tag, attrs)
	if leading {
		p.top().push(mk(sexp.SymStatic, " "))
	}
	p.top().push(node)
	if trailing {
		p.top().push(mk(sexp.SymStatic, " "))
	}

	switch {
	case blockExpandRe.MatchString(p.line):
		p.line = p.line[len(blockExpandRe.FindString(p.line)):]
		if p.embeddedRe.MatchString(p.line) {
			node.push(p.parseEmbedded())
			return
		}
		inner, ok := p.matchTag()
		if !ok {
			p.syntaxError("Expected tag")
		}
		content := mk(sexp.SymMulti)
		node.push(content)
		i := len(p.stacks)
		p.pushStack(content)
		p.parseTag(inner)
		p.stacks = append(p.stacks[:i], p.stacks[i+1:]...)

	case tagOutputRe.MatchString(p.line):
		m := tagOutputRe.FindStringSubmatch(p.line)
		p.line = p.line[len(m[0]):]
		trailing2 := strings.ContainsAny(m[2], ">'")
		block := mk(sexp.SymMulti)
		if !leading && strings.Contains(m[2], "<") {
			p.top().insertBeforeLast(mk(sexp.SymStatic, " "))
		}
		node.push(mk(sexp.SymLiquid, symOutput, m[1] != "=", p.parseBrokenLine(), block))
		if !trailing && trailing2 {
			p.top().push(mk(sexp.SymStatic, " "))
		}
		p.pushStack(block)

	case closedTagRe.MatchString(p.line):
		p.line = p.line[len(closedTagRe.FindString(p.line)):]
		if p.line != "" {
			p.syntaxError("Unexpected text after closed tag")
		}

	case isBlank(p.line):
		content := mk(sexp.SymMulti)
		node.push(content)
		p.pushStack(content)

	default:
		rest, _ := cutSpace(p.line)
		node.push(mk(sexp.SymLiquid, symText, symInline, p.parseTextBlock(rest, len(p.origLine)-len(rest))))
	}
}

func (p *parser) parseAttributes(attrs *list) {
	var closer byte
	if m := attrListOpenRe.FindStringSubmatch(p.line); m != nil {
		closer = delimiters[m[1][0]]
		p.line = p.line[len(m[0]):]
	}

	for {
		if loc := splatAttrPrefix.FindStringIndex(p.line); loc != nil && loc[1] < len(p.line) && !isBlank(p.line[loc[1]:loc[1]+1]) {
			p.line = p.line[loc[1]:]
			attrs.push(mk(sexp.SymLiquid, symSplat, p.parseCode(closer)))
			continue
		}
		if m := quotedAttrRe.FindStringSubmatch(p.line); m != nil {
			p.line = p.line[len(m[0]):]
			value := p.parseQuotedAttr(m[3][0])
			attrs.push(mk(sexp.SymHTML, symAttr, m[1],
				mk(sexp.SymEscape, m[2] == "", mk(sexp.SymLiquid, symInterpolate, value))))
			continue
		}
		if m := codeAttrRe.FindStringSubmatch(p.line); m != nil {
			p.line = p.line[len(m[0]):]
			value := p.parseCode(closer)
			if value == "" {
				p.syntaxError("Invalid empty attribute")
			}
			attrs.push(mk(sexp.SymHTML, symAttr, m[1], mk(sexp.SymLiquid, symAttrValue, m[2] == "", value)))
			continue
		}

		if closer == 0 {
			return
		}

		trimmed := strings.TrimLeft(p.line, " \t")
		if strings.HasPrefix(trimmed, string(closer)) {
			p.line = trimmed[1:]
			return
		}

		p.line = trimmed
		if m := booleanAttrRe.FindStringSubmatch(p.line); m != nil && p.booleanAttrEnds(len(m[0]), closer) {
			p.line = p.line[len(m[0]):]
			attrs.push(mk(sexp.SymHTML, symAttr, m[1], mk(sexp.SymMulti)))
			continue
		}
		if p.line == "" {
			// Атрибуты продолжаются на следующей строке.
			p.top().push(newline())
			if len(p.lines) == 0 {
				p.syntaxError("Expected closing delimiter " + string(closer))
			}
			p.nextLine()
			continue
		}
		p.syntaxError("Expected attribute")
	}
}

func (p *parser) booleanAttrEnds(at int, closer byte) bool {
	if at >= len(p.line) {
		return true
	}
	c := p.line[at]
	return c == closer || isBlank(p.line[at:at+1])
}

// parseCode reads an attribute or splat value up to whitespace or the
// closing attribute delimiter, honouring nested brackets.
func (p *parser) parseCode(outer byte) string {
	var code strings.Builder
	count := 0
	var open, closeCh byte

	atEnd := func() bool {
		c := p.line[0]
		return (outer != 0 && c == outer) || isBlank(p.line[:1])
	}

	for p.line != "" && (count != 0 || !atEnd()) {
		if p.line == "," || p.line == `\` {
			code.WriteString(p.line)
			code.WriteByte('\n')
			p.expectNextLine()
			continue
		}
		c := p.line[0]
		if count > 0 {
			switch c {
			case open:
				count++
			case closeCh:
				count--
			}
		} else if cl, ok := delimiters[c]; ok {
			count = 1
			open, closeCh = c, cl
		}
		code.WriteByte(c)
		p.line = p.line[1:]
	}
	if count != 0 {
		p.syntaxError("Expected closing delimiter " + string(closeCh))
	}
	return code.String()
}

func (p *parser) parseQuotedAttr(quote byte) string {
	var value strings.Builder
	count := 0
	for count != 0 || p.line == "" || p.line[0] != quote {
		if p.line == "" || p.line == `\` {
			if p.line == `\` {
				value.WriteByte(' ')
			} else {
				value.WriteByte('\n')
			}
			p.expectNextLine()
			continue
		}
		c := p.line[0]
		switch c {
		case '{':
			count++
		case '}':
			count--
		}
		value.WriteByte(c)
		p.line = p.line[1:]
	}
	p.line = p.line[1:]
	return value.String()
}
