// Package diagfmt renders a diag.Report: default (coloured text), short,
// json, checkstyle and sarif.
package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"liquidlint/internal/diag"
)

// Reporter writes a whole report.
type Reporter interface {
	Report(w io.Writer, r *diag.Report) error
}

// Factory builds a reporter for the given options.
type Factory func(opts Options) Reporter

// UnknownReporterError is returned by Lookup.
type UnknownReporterError struct {
	Name  string
	Known []string
}

func (e *UnknownReporterError) Error() string {
	return fmt.Sprintf("unknown reporter %q (available: %v)", e.Name, e.Known)
}

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a reporter under name. Registering a name twice panics.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[name]; dup {
		panic("diagfmt: reporter " + name + " registered twice")
	}
	factories[name] = f
}

// Names lists registered reporters, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named reporter.
func Lookup(name string, opts Options) (Reporter, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, &UnknownReporterError{Name: name, Known: Names()}
	}
	return f(opts), nil
}

func init() {
	Register("default", func(opts Options) Reporter { return &Pretty{opts: opts} })
	Register("short", func(opts Options) Reporter { return &Short{opts: opts} })
	Register("json", func(opts Options) Reporter { return &JSON{opts: opts} })
	Register("checkstyle", func(opts Options) Reporter { return &Checkstyle{opts: opts} })
	Register("sarif", func(opts Options) Reporter { return &Sarif{opts: opts} })
}
