package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"

	"fortio.org/safecast"

	"liquidlint/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
	// ruleId for parse failures, which carry no check name
	syntaxRuleID = "Syntax"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string        `json:"id"`
	ShortDescription *sarifMessage `json:"shortDescription,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex uint32          `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
}

// Sarif writes a SARIF 2.1.0 log with one run.
type Sarif struct {
	opts Options
}

func (s *Sarif) Report(w io.Writer, r *diag.Report) error {
	ruleIDs := make(map[string]struct{})
	for _, it := range r.Issues {
		ruleIDs[ruleID(it)] = struct{}{}
	}
	ids := make([]string, 0, len(ruleIDs))
	for id := range ruleIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]uint32, len(ids))
	rules := make([]sarifRule, len(ids))
	for i, id := range ids {
		n, err := safecast.Conv[uint32](i)
		if err != nil {
			return err
		}
		index[id] = n
		rules[i] = sarifRule{ID: id}
		if desc := s.opts.Rules[id]; desc != "" {
			rules[i].ShortDescription = &sarifMessage{Text: desc}
		}
	}

	results := make([]sarifResult, 0, len(r.Issues))
	for _, it := range r.Issues {
		loc := sarifPhysical{ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(s.opts.path(it.File))}}
		// SARIF lines are 1-based; line 0 means unknown
		if it.Line > 0 {
			line, err := safecast.Conv[uint32](it.Line)
			if err != nil {
				return err
			}
			loc.Region = &sarifRegion{StartLine: line}
		}
		id := ruleID(it)
		results = append(results, sarifResult{
			RuleID:    id,
			RuleIndex: index[id],
			Level:     sarifLevel(it.Severity),
			Message:   sarifMessage{Text: it.Message},
			Locations: []sarifLocation{{PhysicalLocation: loc}},
		})
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    s.opts.toolName(),
				Version: s.opts.ToolVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func ruleID(it diag.Issue) string {
	if it.Linter == "" {
		return syntaxRuleID
	}
	return it.Linter
}

func sarifLevel(s diag.Severity) string {
	if s == diag.SevError {
		return "error"
	}
	return "warning"
}
