package diag

// DedupReporter wraps another Reporter and suppresses duplicate issues.
type DedupReporter struct {
	next Reporter
	seen map[Issue]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique issues to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[Issue]struct{}),
	}
}

func (r *DedupReporter) Report(i Issue) {
	if r == nil {
		return
	}
	if _, ok := r.seen[i]; ok {
		return
	}
	r.seen[i] = struct{}{}
	if r.next != nil {
		r.next.Report(i)
	}
}
