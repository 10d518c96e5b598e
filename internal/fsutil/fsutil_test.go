package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/Documents/employees.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "Documents", "employees.json"), got)

	got, err = ExpandHome("~")
	require.NoError(t, err)
	require.Equal(t, home, got)

	for _, p := range []string{"/tmp/employees.json", "rel/path.json", "~other/x", ""} {
		got, err := ExpandHome(p)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestCopyFilePreservesContentModeAndMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":1}]`), 0o600))
	old := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, old, old))

	// an existing, longer destination must be truncated
	require.NoError(t, os.WriteFile(dst, []byte("previous content that is longer"), 0o644))

	require.NoError(t, CopyFile(src, dst))

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, string(b))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	require.True(t, fi.ModTime().Equal(old), "mtime %v", fi.ModTime())
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestCopyFileOntoItself(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "employees.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":1}]`), 0o644))
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(src, link))

	for _, dst := range []string{src, filepath.Join(dir, ".", "employees.json"), link} {
		require.ErrorIs(t, CopyFile(src, dst), ErrSameFile, dst)
		b, err := os.ReadFile(src)
		require.NoError(t, err)
		require.Equal(t, `[{"id":1}]`, string(b))
	}
}

func TestExistsIsDirEnsureParent(t *testing.T) {
	dir := t.TempDir()
	require.True(t, Exists(dir))
	require.True(t, IsDir(dir))

	nested := filepath.Join(dir, "a", "b", "file.json")
	require.False(t, Exists(nested))
	require.NoError(t, EnsureParent(nested))
	require.True(t, IsDir(filepath.Dir(nested)))
	require.NoError(t, EnsureParent("file.json"))
}
