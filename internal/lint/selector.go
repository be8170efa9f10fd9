package lint

import (
	"liquidlint/internal/config"
	"liquidlint/internal/finder"
)

// SelectOptions narrow the registered checks.
type SelectOptions struct {
	IncludeLinters []string
	ExcludeLinters []string
}

// Selector decides which checks run on which file.
type Selector struct {
	cfg   *config.Config
	descs []Descriptor
}

// NewSelector resolves the checks to run. Checks disabled in the
// configuration still run when named in IncludeLinters.
func NewSelector(reg *Registry, cfg *config.Config, opts SelectOptions) (*Selector, error) {
	included, err := reg.Extract(opts.IncludeLinters)
	if err != nil {
		return nil, err
	}
	excluded, err := reg.Extract(opts.ExcludeLinters)
	if err != nil {
		return nil, err
	}
	explicit := len(included) > 0
	if !explicit {
		included = reg.Descriptors()
	}
	skip := make(map[string]bool, len(excluded))
	for _, d := range excluded {
		skip[d.Name] = true
	}

	var descs []Descriptor
	for _, d := range included {
		if skip[d.Name] {
			continue
		}
		if !explicit && !cfg.ForLinter(d.Name).Enabled() {
			continue
		}
		descs = append(descs, d)
	}
	if len(descs) == 0 {
		return nil, ErrNoLinters
	}
	return &Selector{cfg: cfg, descs: descs}, nil
}

// Names lists the selected checks.
func (s *Selector) Names() []string {
	names := make([]string, len(s.descs))
	for i, d := range s.descs {
		names[i] = d.Name
	}
	return names
}

// ForFile builds fresh instances of the checks whose include/exclude globs
// accept path.
func (s *Selector) ForFile(path string) []Linter {
	var out []Linter
	for _, d := range s.descs {
		view := s.cfg.ForLinter(d.Name)
		if inc := view.Include(); len(inc) > 0 && !finder.MatchAny(inc, path) {
			continue
		}
		if finder.MatchAny(view.Exclude(), path) {
			continue
		}
		out = append(out, d.New(view))
	}
	return out
}
