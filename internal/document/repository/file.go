package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/firepolicepension/jsoneditor/internal/fsutil"
	"github.com/firepolicepension/jsoneditor/pkg/logger"
)

// BackupSuffix is appended to the document path to name the rolling backup.
const BackupSuffix = ".backup"

var emptyDocument = []byte("[]")

// FileRepo keeps the document in a single JSON file and refreshes
// <path>.backup before every overwrite.
type FileRepo struct {
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (f *FileRepo) Path() string       { return f.path }
func (f *FileRepo) BackupPath() string { return f.path + BackupSuffix }

func (f *FileRepo) Exists() bool {
	return fsutil.Exists(f.path)
}

// Load returns the document indented with two spaces. A missing file reads as
// an empty list; unreadable or malformed files yield an {"error": ...} object.
func (f *FileRepo) Load() []byte {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyDocument
		}
		logger.Warnf("read document %s: %v", f.path, err)
		return errorDocument(err.Error())
	}
	out, err := Indent(b)
	if err != nil {
		return errorDocument("Invalid JSON: " + err.Error())
	}
	return out
}

// Save writes raw verbatim once it is known to be valid JSON. The previous
// file content is copied to the backup first; a failed backup never blocks
// the write.
func (f *FileRepo) Save(raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("save document: %w", ErrInvalidJSON)
	}

	if f.Exists() {
		if err := fsutil.CopyFile(f.path, f.BackupPath()); err != nil {
			logger.Debugf("backup %s skipped: %v", f.BackupPath(), err)
		}
	}

	if err := fsutil.EnsureParent(f.path); err != nil {
		logger.Errorf("error saving JSON: %v", err)
		return fmt.Errorf("create document directory: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		logger.Errorf("error saving JSON: %v", err)
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Indent re-serializes a JSON document with two-space indentation. Values,
// key order and number spelling are left untouched.
func Indent(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(b), "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func errorDocument(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}
