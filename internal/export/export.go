// Package export copies the employee document to a destination chosen by
// the user: a filesystem path (typically an app's Documents directory) or an
// s3:// object when an object store is configured.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/firepolicepension/jsoneditor/internal/fsutil"
	"github.com/firepolicepension/jsoneditor/internal/storage"
)

// DefaultFileName is used when the destination is a directory.
const DefaultFileName = "employees.json"

var (
	ErrAppPathNotSpecified = errors.New("App path not specified")
	ErrSourceMissing       = errors.New("Source file does not exist")
	ErrObjectStoreDisabled = errors.New("object storage is not configured")
)

// Sink names reported in Result and metrics.
const (
	SinkFile   = "file"
	SinkObject = "object"
)

// Uploader is the part of storage.ObjectStore the exporter needs.
type Uploader interface {
	Upload(ctx context.Context, ref storage.ObjectRef, r io.Reader, size int64, contentType string) error
}

// Result describes a finished export.
type Result struct {
	Sink   string
	Target string
}

// Message is the text shown to the user.
func (r Result) Message() string {
	return "Exported to " + r.Target
}

// Exporter copies the file at source. objects may be nil.
type Exporter struct {
	source  string
	objects Uploader
}

func New(source string, objects Uploader) *Exporter {
	return &Exporter{source: source, objects: objects}
}

// SinkFor reports which sink would handle dest.
func SinkFor(dest string) string {
	if storage.IsObjectURL(strings.TrimSpace(dest)) {
		return SinkObject
	}
	return SinkFile
}

// Export copies the document to dest.
func (e *Exporter) Export(ctx context.Context, dest string) (Result, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return Result{}, ErrAppPathNotSpecified
	}
	if storage.IsObjectURL(dest) {
		return e.exportObject(ctx, dest)
	}
	return e.exportFile(dest)
}

// ResolveFileTarget expands ~ and appends DefaultFileName when dest is an
// existing directory.
func ResolveFileTarget(dest string) (string, error) {
	p, err := fsutil.ExpandHome(dest)
	if err != nil {
		return "", err
	}
	if fsutil.IsDir(p) {
		return filepath.Join(p, DefaultFileName), nil
	}
	return p, nil
}

func (e *Exporter) exportFile(dest string) (Result, error) {
	target, err := ResolveFileTarget(dest)
	if err != nil {
		return Result{}, err
	}
	if !fsutil.Exists(e.source) {
		return Result{}, ErrSourceMissing
	}
	if err := fsutil.EnsureParent(target); err != nil {
		return Result{}, err
	}
	if err := fsutil.CopyFile(e.source, target); err != nil {
		return Result{}, err
	}
	return Result{Sink: SinkFile, Target: target}, nil
}

func (e *Exporter) exportObject(ctx context.Context, dest string) (Result, error) {
	ref, err := storage.ParseObjectURL(dest, DefaultFileName)
	if err != nil {
		return Result{}, err
	}
	if e.objects == nil {
		return Result{}, ErrObjectStoreDisabled
	}
	f, err := os.Open(e.source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, ErrSourceMissing
		}
		return Result{}, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return Result{}, err
	}
	if err := e.objects.Upload(ctx, ref, f, fi.Size(), "application/json"); err != nil {
		return Result{}, fmt.Errorf("upload: %w", err)
	}
	return Result{Sink: SinkObject, Target: ref.String()}, nil
}
