package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/firepolicepension/jsoneditor/internal/fsutil"
)

// AppPathFileName is the config file kept next to the document.
const AppPathFileName = ".json_editor_config"

// AppPathRepo persists the export destination chosen in the editor as plain
// text in the document's directory.
type AppPathRepo struct {
	path string
}

// NewAppPathRepo returns the store for the document at documentPath.
func NewAppPathRepo(documentPath string) *AppPathRepo {
	return &AppPathRepo{path: filepath.Join(filepath.Dir(documentPath), AppPathFileName)}
}

func (a *AppPathRepo) Path() string { return a.path }

// Get returns the saved path with surrounding whitespace removed, or "" when
// nothing could be read.
func (a *AppPathRepo) Get() string {
	b, err := os.ReadFile(a.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Set writes p verbatim.
func (a *AppPathRepo) Set(p string) error {
	if err := fsutil.EnsureParent(a.path); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(a.path, []byte(p), 0o644); err != nil {
		return err
	}
	return nil
}
