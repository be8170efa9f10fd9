package diagfmt

import (
	"bufio"
	"encoding/xml"
	"io"
	"strconv"

	"liquidlint/internal/diag"
)

// Checkstyle writes the XML format understood by CI plugins:
//
//	<?xml version='1.0'?><checkstyle><file name='a.liquid'><error line='3' .../></file></checkstyle>
type Checkstyle struct {
	opts Options
}

func (c *Checkstyle) Report(w io.Writer, r *diag.Report) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version='1.0'?>")
	if len(r.Issues) == 0 {
		bw.WriteString("<checkstyle/>\n")
		return bw.Flush()
	}
	bw.WriteString("<checkstyle>")
	current := ""
	for i, it := range r.Issues {
		path := c.opts.path(it.File)
		if i == 0 || path != current {
			if i > 0 {
				bw.WriteString("</file>")
			}
			bw.WriteString("<file name='")
			attr(bw, path)
			bw.WriteString("'>")
			current = path
		}
		bw.WriteString("<error line='")
		bw.WriteString(strconv.Itoa(it.Line))
		bw.WriteString("' message='")
		attr(bw, it.Message)
		bw.WriteString("' severity='")
		bw.WriteString(it.Severity.String())
		bw.WriteString("' source='")
		attr(bw, c.opts.toolName())
		bw.WriteString("'/>")
	}
	bw.WriteString("</file></checkstyle>\n")
	return bw.Flush()
}

// attr escapes s for a single-quoted attribute; xml.EscapeText covers ' too.
func attr(w io.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s)) //nolint:errcheck // bufio.Writer reports on Flush
}
