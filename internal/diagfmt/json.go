package diagfmt

import (
	"encoding/json"
	"io"
	"runtime"

	"liquidlint/internal/diag"
)

// LocationJSON is where an offense was found.
type LocationJSON struct {
	Line int `json:"line"`
}

// OffenseJSON is one issue.
type OffenseJSON struct {
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	// nil for parse failures
	Linter *string `json:"linter"`
}

// FileJSON groups the offenses of one file.
type FileJSON struct {
	Path     string        `json:"path"`
	Offenses []OffenseJSON `json:"offenses"`
}

// MetadataJSON describes the tool.
type MetadataJSON struct {
	LiquidLintVersion string `json:"liquid_lint_version"`
	GoVersion         string `json:"go_version"`
	Platform          string `json:"platform"`
}

// SummaryJSON holds totals.
type SummaryJSON struct {
	OffenseCount       int `json:"offense_count"`
	TargetFileCount    int `json:"target_file_count"`
	InspectedFileCount int `json:"inspected_file_count"`
}

// ReportJSON is the root of the json output.
type ReportJSON struct {
	Metadata MetadataJSON `json:"metadata"`
	Files    []FileJSON   `json:"files"`
	Summary  SummaryJSON  `json:"summary"`
}

// JSON writes ReportJSON. Only files with offenses are listed.
type JSON struct {
	opts Options
}

// Build forms the output structure without serialising it.
func (j *JSON) Build(r *diag.Report) ReportJSON {
	out := ReportJSON{
		Metadata: MetadataJSON{
			LiquidLintVersion: j.opts.ToolVersion,
			GoVersion:         runtime.Version(),
			Platform:          runtime.GOOS + "/" + runtime.GOARCH,
		},
		Files: make([]FileJSON, 0),
	}
	index := make(map[string]int)
	for _, it := range r.Issues {
		path := j.opts.path(it.File)
		idx, ok := index[path]
		if !ok {
			idx = len(out.Files)
			index[path] = idx
			out.Files = append(out.Files, FileJSON{Path: path})
		}
		off := OffenseJSON{
			Severity: it.Severity.String(),
			Message:  it.Message,
			Location: LocationJSON{Line: it.Line},
		}
		if it.Linter != "" {
			name := it.Linter
			off.Linter = &name
		}
		out.Files[idx].Offenses = append(out.Files[idx].Offenses, off)
	}
	out.Summary = SummaryJSON{
		OffenseCount:       len(r.Issues),
		TargetFileCount:    len(out.Files),
		InspectedFileCount: len(r.Files),
	}
	return out
}

func (j *JSON) Report(w io.Writer, r *diag.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.Build(r))
}
