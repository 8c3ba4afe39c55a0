package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type blobStore interface {
	Put(ctx context.Context, filename, contentType string, content io.Reader) (*models.BlobInfo, error)
	Open(ctx context.Context, id string) (*models.BlobInfo, io.ReadCloser, error)
	List(ctx context.Context) ([]models.BlobInfo, error)
	Delete(ctx context.Context, id string) error
}

// SyllabusService manages syllabus PDFs. The blob descriptor is the record:
// there is no separate metadata table, so listing and deletion go straight
// through the chunked store.
type SyllabusService struct {
	store  blobStore
	logger *zap.Logger
}

// NewSyllabusService constructs the service.
func NewSyllabusService(store blobStore, logger *zap.Logger) *SyllabusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusService{store: store, logger: logger}
}

// Upload stores the syllabus document and returns its descriptor.
func (s *SyllabusService) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*models.BlobInfo, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, appErrors.Clone(appErrors.ErrUpload, "file is required")
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	info, err := s.store.Put(ctx, filename, contentType, content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store syllabus")
	}

	s.logger.Info("syllabus uploaded",
		zap.String("file_id", info.ID),
		zap.String("filename", info.Filename),
		zap.Int64("size_bytes", info.SizeBytes))
	return info, nil
}

// List returns every stored syllabus descriptor, newest first.
func (s *SyllabusService) List(ctx context.Context) ([]models.BlobInfo, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list syllabi")
	}
	if infos == nil {
		infos = []models.BlobInfo{}
	}
	return infos, nil
}

// Open returns the descriptor and a content stream for one syllabus. The
// caller must close the reader.
func (s *SyllabusService) Open(ctx context.Context, id string) (*models.BlobInfo, io.ReadCloser, error) {
	info, rc, err := s.store.Open(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open syllabus")
	}
	return info, rc, nil
}

// Delete removes a syllabus. A missing id is NotFound.
func (s *SyllabusService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete syllabus")
	}
	return nil
}
