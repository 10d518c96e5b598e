// Package fsutil holds the small filesystem helpers shared by the stores and
// the exporter: home-directory expansion and metadata-preserving copies.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrSameFile is returned by CopyFile when src and dst name the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// ExpandHome replaces a leading "~" (alone or followed by a separator) with
// the current user's home directory. Other paths are returned unchanged,
// including "~user" forms.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

// Exists reports whether p exists (file or directory).
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsDir reports whether p exists and is a directory.
func IsDir(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// EnsureParent creates the parent directory of p when it is missing.
func EnsureParent(p string) error {
	dir := filepath.Dir(p)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// CopyFile copies src to dst, keeping the permission bits and the
// modification time of src (also used as the access time). dst is truncated
// when it already exists, unless it is src itself.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	if di, err := os.Stat(dst); err == nil && os.SameFile(fi, di) {
		return fmt.Errorf("%w: %s", ErrSameFile, dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}
	mtime := fi.ModTime()
	return os.Chtimes(dst, mtime, mtime)
}
