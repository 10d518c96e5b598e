package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppPathRepoLivesNextToDocument(t *testing.T) {
	dir := t.TempDir()
	a := NewAppPathRepo(filepath.Join(dir, "employees.json"))
	require.Equal(t, filepath.Join(dir, AppPathFileName), a.Path())
}

func TestAppPathRepoGetMissing(t *testing.T) {
	a := NewAppPathRepo(filepath.Join(t.TempDir(), "employees.json"))
	require.Equal(t, "", a.Get())
}

func TestAppPathRepoSetThenGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "created", "later")
	a := NewAppPathRepo(filepath.Join(dir, "employees.json"))

	require.NoError(t, a.Set("~/Library/Developer/CoreSimulator/Documents"))
	require.Equal(t, "~/Library/Developer/CoreSimulator/Documents", a.Get())

	// stored verbatim, trimmed on read
	require.NoError(t, a.Set("  /tmp/exported \n"))
	b, err := os.ReadFile(a.Path())
	require.NoError(t, err)
	require.Equal(t, "  /tmp/exported \n", string(b))
	require.Equal(t, "/tmp/exported", a.Get())
}

func TestAppPathRepoSetFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	a := NewAppPathRepo(filepath.Join(blocker, "employees.json"))
	require.Error(t, a.Set("/tmp/x"))
	require.Equal(t, "", a.Get())
}
