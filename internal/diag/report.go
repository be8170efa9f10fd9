package diag

// Report aggregates the issues of a run together with the files that were
// inspected.
type Report struct {
	Issues []Issue
	Files  []string
}

// NewReport sorts issues and builds a report.
func NewReport(issues []Issue, files []string) *Report {
	sorted := append([]Issue(nil), issues...)
	SortIssues(sorted)
	return &Report{Issues: sorted, Files: files}
}

// Failed reports whether any issue has error severity.
func (r *Report) Failed() bool {
	for _, i := range r.Issues {
		if i.IsError() {
			return true
		}
	}
	return false
}

// Counts returns the number of warnings and errors.
func (r *Report) Counts() (warnings, errors int) {
	for _, i := range r.Issues {
		if i.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return warnings, errors
}
