package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"liquidlint/internal/diag"
)

// Short prints path:line:severity:check:message for editors and grep.
type Short struct {
	opts Options
}

func (s *Short) Report(w io.Writer, r *diag.Report) error {
	bw := bufio.NewWriter(w)
	for _, it := range r.Issues {
		linter := it.Linter
		if linter == "" {
			linter = "Syntax"
		}
		fmt.Fprintf(bw, "%s:%d:%s:%s:%s\n", s.opts.path(it.File), it.Line, it.Severity.Mark(), linter, it.Message)
	}
	return bw.Flush()
}
