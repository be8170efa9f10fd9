// Package finder resolves command-line paths and globs to template files.
package finder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// Extension marks template files picked up when walking directories.
const Extension = ".liquid"

// InvalidPathError reports a path or glob that matched nothing.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("file path %q does not exist", e.Path)
}

// Find expands patterns into a sorted, de-duplicated file list. Regular
// files are taken as given whatever their extension; directories are walked
// for *.liquid files; anything else is treated as a glob, which must match at
// least one *.liquid file. Paths matching an exclude glob are dropped.
func Find(ctx context.Context, patterns, excludes []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(pattern)
		switch {
		case err == nil && info.IsDir():
			if err := walk(ctx, pattern, add); err != nil {
				return nil, err
			}
		case err == nil:
			add(pattern)
		case errors.Is(err, os.ErrNotExist):
			matches, gerr := doublestar.Glob(pattern)
			if gerr != nil || len(matches) == 0 {
				return nil, &InvalidPathError{Path: pattern}
			}
			found := 0
			for _, m := range matches {
				if isTemplate(m) {
					add(m)
					found++
				}
			}
			if found == 0 {
				return nil, &InvalidPathError{Path: pattern}
			}
		default:
			return nil, fmt.Errorf("failed to stat %q: %w", pattern, err)
		}
	}

	out := files[:0]
	for _, f := range files {
		if !MatchAny(excludes, f) {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

func walk(ctx context.Context, dir string, add func(string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && isTemplate(path) {
			add(path)
		}
		return nil
	})
}

func isTemplate(path string) bool {
	if filepath.Ext(path) != Extension {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// clean strips a leading "./" and normalises separators to "/".
func clean(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	return strings.TrimPrefix(path, "./")
}

// MatchAny reports whether path matches one of the globs. Both the path as
// given and its absolute form are tried, so relative and absolute globs work.
func MatchAny(globs []string, path string) bool {
	if len(globs) == 0 {
		return false
	}
	candidates := []string{clean(path)}
	if abs, err := filepath.Abs(path); err == nil {
		candidates = append(candidates, filepath.ToSlash(abs))
	}
	for _, glob := range globs {
		glob = strings.TrimPrefix(filepath.ToSlash(glob), "./")
		for _, c := range candidates {
			if ok, err := doublestar.Match(glob, c); err == nil && ok {
				return true
			}
		}
	}
	return false
}
