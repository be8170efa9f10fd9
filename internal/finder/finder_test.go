package finder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		path := filepath.Join(root, r)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("p\n"), 0o600))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestFindDirectoriesFilesAndGlobs(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"app/views/index.liquid",
		"app/views/users/show.liquid",
		"app/views/users/show.html.erb",
		"notes.txt",
	)
	chdir(t, root)

	files, err := Find(context.Background(), []string{"./app", "notes.txt", "app/**/show.liquid"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"app/views/index.liquid",
		"app/views/users/show.liquid",
		"notes.txt",
	}, files)
}

func TestFindExcludes(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.liquid", "vendor/b.liquid", "vendor/deep/c.liquid")
	chdir(t, root)

	files, err := Find(context.Background(), []string{"."}, []string{"vendor/**/*.liquid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.liquid"}, files)
}

func TestFindMissingPath(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Find(context.Background(), []string{"missing/*.liquid"}, nil)
	var invalid *InvalidPathError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "missing/*.liquid", invalid.Path)
}

func TestFindGlobWithoutTemplates(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "app/views/show.html.erb", "app/views/index.liquid")
	chdir(t, root)

	_, err := Find(context.Background(), []string{"app/**/*.erb"}, nil)
	var invalid *InvalidPathError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "app/**/*.erb", invalid.Path)

	files, err := Find(context.Background(), []string{"app/**/*"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/views/index.liquid"}, files)
}

func TestFindCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Find(ctx, []string{"."}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchAny(t *testing.T) {
	assert.True(t, MatchAny([]string{"app/**/*.liquid"}, "./app/views/a.liquid"))
	assert.True(t, MatchAny([]string{"**/legacy/*"}, "app/legacy/x.liquid"))
	assert.False(t, MatchAny([]string{"app/*.liquid"}, "app/views/a.liquid"))
	assert.False(t, MatchAny(nil, "a.liquid"))
}
