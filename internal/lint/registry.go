package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh check instance from its configuration view.
type Factory func(cfg ConfigView) Linter

// Descriptor describes a registered check.
type Descriptor struct {
	Name        string
	Description string
	New         Factory
}

// Registry is an append-only set of check descriptors.
type Registry struct {
	mu    sync.RWMutex
	descs []Descriptor
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

var defaultRegistry = NewRegistry()

// Default is the process-wide registry populated by init-time Register calls.
func Default() *Registry { return defaultRegistry }

// Register adds d to the process-wide registry.
func Register(d Descriptor) { defaultRegistry.Register(d) }

// Register adds d. Registering a name twice is a programming error.
func (r *Registry) Register(d Descriptor) {
	if d.Name == "" || d.New == nil {
		panic("lint: descriptor needs a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.index[d.Name]; dup {
		panic(fmt.Sprintf("lint: linter %q registered twice", d.Name))
	}
	r.index[d.Name] = len(r.descs)
	r.descs = append(r.descs, d)
}

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descs[i], true
}

// Descriptors returns every descriptor sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	out := append([]Descriptor(nil), r.descs...)
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	descs := r.Descriptors()
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return names
}

// Extract resolves names to descriptors, failing with *NoSuchLinterError
// when any is unknown.
func (r *Registry) Extract(names []string) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(names))
	var missing []string
	for _, name := range names {
		d, ok := r.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out = append(out, d)
	}
	if len(missing) > 0 {
		return nil, &NoSuchLinterError{Names: missing}
	}
	return out, nil
}
