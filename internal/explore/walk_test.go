package explore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectWalk(t *testing.T, e *Explorer, root string) []string {
	t.Helper()

	var rels []string
	for entry, err := range e.Walk(root) {
		require.NoError(t, err)
		if entry.IsDir {
			rels = append(rels, entry.Rel+"/")
			continue
		}
		rels = append(rels, entry.Rel)
	}
	return rels
}

func TestWalkPrunesBeforeDescent(t *testing.T) {
	e := newTestExplorer(t, map[string]string{
		"/root/b.txt":                         "b",
		"/root/a/one.txt":                     "1",
		"/root/.git/config":                   "secret",
		"/root/a/node_modules/pkg/index.js":   "secret",
		"/root/a/__pycache__/mod.cpython.pyc": "x",
	})

	got := collectWalk(t, e, "/root")
	assert.Equal(t, []string{"a/", "a/one.txt", "b.txt"}, got)
}

func TestWalkIsRestartable(t *testing.T) {
	e := newTestExplorer(t, map[string]string{
		"/root/x/y.txt": "y",
		"/root/z.txt":   "z",
	})

	seq := e.Walk("/root")
	var first, second []string
	for entry := range seq {
		first = append(first, entry.Rel)
	}
	for entry := range seq {
		second = append(second, entry.Rel)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"x", "x/y.txt", "z.txt"}, first)
}

func TestWalkStopsEarly(t *testing.T) {
	e := newTestExplorer(t, map[string]string{
		"/root/a.txt": "a",
		"/root/b.txt": "b",
		"/root/c.txt": "c",
	})

	var seen int
	for range e.Walk("/root") {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestWalkSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "real", "data.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "data.txt"), filepath.Join(root, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.txt"), filepath.Join(root, "dangling.txt")))

	e := New(DefaultPolicy())

	sizes := map[string]int64{}
	for entry, err := range e.Walk(root) {
		require.NoError(t, err)
		sizes[entry.Rel] = entry.Size
	}

	assert.NotContains(t, sizes, "loop")
	assert.NotContains(t, sizes, "loop/data.txt")
	assert.Equal(t, int64(5), sizes["link.txt"])
	assert.Equal(t, int64(-1), sizes["dangling.txt"])
	assert.Equal(t, int64(5), sizes["real/data.txt"])
}

func TestWalkLinkGuardSkipsRejectedLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	base := t.TempDir()
	root := filepath.Join(base, "project")
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.MkdirAll(outside, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.env"), []byte("KEY=local"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "prod.env"), []byte("KEY=sk_live_1"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(outside, "prod.env"), filepath.Join(root, "prod.env")))
	require.NoError(t, os.Symlink(filepath.Join(root, "app.env"), filepath.Join(root, "local.env")))

	var checked []string
	guard := func(path string) error {
		checked = append(checked, filepath.Base(path))
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			return err
		}
		if filepath.Dir(target) != mustEval(t, root) {
			return os.ErrPermission
		}
		return nil
	}
	e := New(DefaultPolicy(), WithLinkGuard(guard))

	assert.Equal(t, []string{"app.env", "local.env"}, collectWalk(t, e, root))
	assert.ElementsMatch(t, []string{"local.env", "prod.env"}, checked, "only symlinks reach the guard")

	res := e.GrepRecursive(root, "sk_live_", e.DefaultRecursiveOptions())
	assert.Equal(t, "No occurrences of 'sk_live_' found.", res.Text)
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

// recordingFs records every path opened through it.
type recordingFs struct {
	afero.Fs
	opened *[]string
}

func (r recordingFs) Open(name string) (afero.File, error) {
	*r.opened = append(*r.opened, name)
	return r.Fs.Open(name)
}

func TestWalkNeverOpensPrunedDirectories(t *testing.T) {
	var opened []string
	fsys := recordingFs{
		Fs: newTestFs(t, map[string]string{
			"/root/.git/objects/ab/cdef":    "blob",
			"/root/src/node_modules/x/a.js": "secret",
			"/root/src/app.py":              "print()",
		}),
		opened: &opened,
	}
	e := New(DefaultPolicy(), WithFs(fsys))

	for _, err := range e.Walk("/root") {
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"/root", "/root/src"}, opened)
}
