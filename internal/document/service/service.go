package service

import (
	"context"
	"errors"
	"strings"

	"github.com/firepolicepension/jsoneditor/internal/document"
	"github.com/firepolicepension/jsoneditor/internal/document/repository"
	"github.com/firepolicepension/jsoneditor/internal/export"
	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/firepolicepension/jsoneditor/pkg/metrics"
)

// Service defines the editor operations used by the handler layer.
type Service interface {
	DocumentPath() string
	Load() []byte
	Save(raw []byte) error
	AppPath() string
	SetAppPath(p string) error
	Export(ctx context.Context, dest string) (export.Result, error)
}

// New returns a Service over the given stores. All paths are fixed here and
// never change for the lifetime of the service.
func New(docs repository.DocumentRepository, appPath *repository.AppPathRepo, exp *export.Exporter) Service {
	return &editorService{docs: docs, appPath: appPath, exporter: exp}
}

// NewFileService wires the file-backed stores for documentPath. objects may
// be nil when no object store is configured.
func NewFileService(documentPath string, objects export.Uploader) Service {
	return New(
		repository.NewFileRepo(documentPath),
		repository.NewAppPathRepo(documentPath),
		export.New(documentPath, objects),
	)
}

type editorService struct {
	docs     repository.DocumentRepository
	appPath  *repository.AppPathRepo
	exporter *export.Exporter
}

func (s *editorService) DocumentPath() string {
	return s.docs.Path()
}

func (s *editorService) Load() []byte {
	if !s.docs.Exists() {
		metrics.DocumentLoads.WithLabelValues("missing").Inc()
		return s.docs.Load()
	}
	out := s.docs.Load()
	if isErrorDocument(out) {
		metrics.DocumentLoads.WithLabelValues("invalid").Inc()
		logger.Warnf("document %s could not be loaded: %s", s.docs.Path(), out)
		return out
	}
	metrics.DocumentLoads.WithLabelValues("ok").Inc()
	return out
}

func (s *editorService) Save(raw []byte) error {
	if err := s.docs.Save(raw); err != nil {
		if errors.Is(err, repository.ErrInvalidJSON) {
			metrics.DocumentSaves.WithLabelValues("invalid").Inc()
			logger.Warnf("rejected save of %d bytes: %v", len(raw), err)
		} else {
			metrics.DocumentSaves.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.DocumentSaves.WithLabelValues("ok").Inc()

	recs, err := document.ParseRecords(raw)
	if err != nil {
		metrics.DocumentRecords.Set(-1)
		logger.Infof("saved %s (%d bytes, not a record list)", s.docs.Path(), len(raw))
		return nil
	}
	metrics.DocumentRecords.Set(float64(len(recs)))
	logger.Infof("saved %s (%d records)", s.docs.Path(), len(recs))
	return nil
}

func (s *editorService) AppPath() string {
	return s.appPath.Get()
}

func (s *editorService) SetAppPath(p string) error {
	if err := s.appPath.Set(p); err != nil {
		metrics.AppPathWrites.WithLabelValues("error").Inc()
		logger.Errorf("error saving app path: %v", err)
		return err
	}
	metrics.AppPathWrites.WithLabelValues("ok").Inc()
	logger.Infof("saved app path to: %s", s.appPath.Path())
	return nil
}

func (s *editorService) Export(ctx context.Context, dest string) (export.Result, error) {
	sink := export.SinkFor(dest)
	res, err := s.exporter.Export(ctx, dest)
	if err != nil {
		metrics.Exports.WithLabelValues(sink, "error").Inc()
		logger.Warnf("export to %q failed: %v", strings.TrimSpace(dest), err)
		return res, err
	}
	metrics.Exports.WithLabelValues(res.Sink, "ok").Inc()
	logger.Infof("%s", res.Message())
	return res, nil
}

// isErrorDocument reports whether Load produced an {"error": ...} object
// rather than the stored document.
func isErrorDocument(b []byte) bool {
	return strings.HasPrefix(string(b), `{"error":`)
}
