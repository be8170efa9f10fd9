package codelint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Rubocop runs the external rubocop executable over stdin.
type Rubocop struct {
	path   string
	config string
}

// NewRubocop creates the process engine.
func NewRubocop(opts Options) *Rubocop {
	path := opts.RubocopPath
	if path == "" {
		path = "rubocop"
	}
	return &Rubocop{path: path, config: opts.RubocopConfig}
}

func (*Rubocop) Name() string { return EngineRubocop }

// Lint pipes src to "rubocop --format json --stdin file". Rubocop exits with
// status 1 when it finds offenses, which is not an error here.
func (r *Rubocop) Lint(ctx context.Context, file, src string) ([]Offense, error) {
	args := []string{"--format", "json", "--force-exclusion"}
	if r.config != "" {
		args = append(args, "--config", r.config)
	}
	args = append(args, "--stdin", rubyName(file))

	// #nosec G204 -- executable and arguments come from configuration
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdin = strings.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.ExitCode() == 1) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("rubocop: %w", err)
		}
		return nil, fmt.Errorf("rubocop: %w: %s", err, msg)
	}
	return parseRubocopJSON(stdout.Bytes())
}

// rubyName gives the unit a .rb name so rubocop applies Ruby cops.
func rubyName(file string) string {
	if file == "" {
		return "template.rb"
	}
	return file + ".rb"
}

type rubocopReport struct {
	Files []struct {
		Offenses []struct {
			CopName  string `json:"cop_name"`
			Message  string `json:"message"`
			Location struct {
				Line      int `json:"line"`
				StartLine int `json:"start_line"`
				Column    int `json:"column"`
			} `json:"location"`
		} `json:"offenses"`
	} `json:"files"`
}

func parseRubocopJSON(data []byte) ([]Offense, error) {
	var report rubocopReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("rubocop: invalid JSON output: %w", err)
	}
	var out []Offense
	for _, f := range report.Files {
		for _, o := range f.Offenses {
			line := o.Location.StartLine
			if line == 0 {
				line = o.Location.Line
			}
			out = append(out, Offense{
				Line:    line,
				Column:  o.Location.Column,
				Cop:     o.CopName,
				Message: o.Message,
			})
		}
	}
	return out, nil
}

// Version asks the executable for its version.
func (r *Rubocop) Version(ctx context.Context) (string, error) {
	// #nosec G204 -- executable comes from configuration
	out, err := exec.CommandContext(ctx, r.path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("rubocop: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
