package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"liquidlint/internal/diag"
)

// Pretty prints one issue per line:
//
//	app/views/a.liquid:3 [W] TagCase: Tag `IMG` should be written in lowercase
//
// Issues without a check (parse failures) omit the "Name: " part.
type Pretty struct {
	opts Options
}

func (p *Pretty) Report(w io.Writer, r *diag.Report) error {
	bw := bufio.NewWriter(w)
	paint := newPalette(p.opts.Color)

	for _, it := range r.Issues {
		fmt.Fprintf(bw, "%s:%s ", paint.file.Sprint(p.opts.path(it.File)), paint.line.Sprint(it.Line))
		if it.IsError() {
			bw.WriteString(paint.err.Sprint("[E]"))
		} else {
			bw.WriteString(paint.warn.Sprint("[W]"))
		}
		bw.WriteByte(' ')
		if it.Linter != "" {
			bw.WriteString(paint.linter.Sprint(it.Linter + ":"))
			bw.WriteByte(' ')
		}
		bw.WriteString(it.Message)
		bw.WriteByte('\n')
	}
	if p.opts.Summary {
		warnings, errors := r.Counts()
		if len(r.Issues) > 0 {
			bw.WriteByte('\n')
		}
		summary := fmt.Sprintf("%d %s inspected, %d %s detected (%d %s, %d %s)",
			len(r.Files), plural(len(r.Files), "file"),
			len(r.Issues), plural(len(r.Issues), "lint"),
			errors, plural(errors, "error"), warnings, plural(warnings, "warning"))
		if len(r.Issues) == 0 {
			bw.WriteString(paint.ok.Sprint(summary))
		} else {
			bw.WriteString(summary)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

type palette struct {
	file, line, warn, err, linter, ok *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		file:   mk(color.FgCyan),
		line:   mk(color.FgMagenta),
		warn:   mk(color.FgYellow),
		err:    mk(color.FgRed),
		linter: mk(color.FgGreen),
		ok:     mk(color.FgGreen, color.Bold),
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
