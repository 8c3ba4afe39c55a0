package service

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type achievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	List(ctx context.Context) ([]models.Achievement, error)
	GetByID(ctx context.Context, id string) (*models.Achievement, error)
	Update(ctx context.Context, id, title, description, date string) error
	Delete(ctx context.Context, id string) error
}

// AchievementService manages certificate records and their attached files.
// Creation is a two-step write: the certificate blob first, then the metadata
// row that makes it discoverable. A crash between the two leaves an orphaned
// blob, never a row pointing at nothing.
type AchievementService struct {
	repo      achievementRepository
	store     blobStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAchievementService constructs the service.
func NewAchievementService(repo achievementRepository, store blobStore, validate *validator.Validate, logger *zap.Logger) *AchievementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AchievementService{repo: repo, store: store, validator: validate, logger: logger}
}

// Create stores the certificate file and then the metadata row. When the row
// insert fails the blob is removed best-effort; a failed cleanup is only
// logged and leaves an undiscoverable orphan.
func (s *AchievementService) Create(ctx context.Context, req models.CreateAchievementRequest, filename, contentType string, content io.Reader) (*models.Achievement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title, description and date are required")
	}
	if filename == "" {
		return nil, appErrors.Clone(appErrors.ErrUpload, "file is required")
	}

	info, err := s.store.Put(ctx, filename, contentType, content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store certificate")
	}

	achievement := &models.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		FileID:      info.ID,
		Filename:    info.Filename,
	}
	if err := s.repo.Create(ctx, achievement); err != nil {
		if delErr := s.store.Delete(ctx, info.ID); delErr != nil {
			s.logger.Error("orphaned certificate blob left behind",
				zap.String("file_id", info.ID),
				zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save achievement")
	}

	return achievement, nil
}

// List returns all achievements, newest first.
func (s *AchievementService) List(ctx context.Context) ([]models.Achievement, error) {
	achievements, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch achievements")
	}
	if achievements == nil {
		achievements = []models.Achievement{}
	}
	return achievements, nil
}

// Open streams the certificate file attached to an achievement.
func (s *AchievementService) Open(ctx context.Context, id string) (*models.BlobInfo, io.ReadCloser, error) {
	achievement, err := s.getByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	info, rc, err := s.store.Open(ctx, achievement.FileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "certificate file not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open certificate")
	}
	return info, rc, nil
}

// Update edits the descriptive fields of a row. The attached file is immutable.
func (s *AchievementService) Update(ctx context.Context, id string, req models.UpdateAchievementRequest) (*models.Achievement, error) {
	if err := s.repo.Update(ctx, id, req.Title, req.Description, req.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "achievement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update achievement")
	}
	return s.getByID(ctx, id)
}

// Delete removes the row and its blob. The row goes last so a partial failure
// keeps the pointer alive; a missing blob is tolerated since the row may have
// outlived a manual cleanup.
func (s *AchievementService) Delete(ctx context.Context, id string) error {
	achievement, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, achievement.FileID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete certificate file")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "achievement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete achievement")
	}
	return nil
}

func (s *AchievementService) getByID(ctx context.Context, id string) (*models.Achievement, error) {
	achievement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "achievement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load achievement")
	}
	return achievement, nil
}
