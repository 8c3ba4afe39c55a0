package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

const classListCacheKey = "classes:all"

type classRepository interface {
	CreateClass(ctx context.Context, class *models.Class) error
	ListClasses(ctx context.Context) ([]models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	UpdateColumns(ctx context.Context, id string, columns []string) error
	CreateStudent(ctx context.Context, student *models.Student) error
	ListStudents(ctx context.Context, classID string) ([]models.Student, error)
	UpdateStudentData(ctx context.Context, id string, data models.StudentData) error
	DeleteStudent(ctx context.Context, id string) error
}

// ClassService manages classes and their student rosters. The class list is
// served from an optional read cache invalidated on class and roster writes.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the service.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateClass creates a class with the default column set.
func (s *ClassService) CreateClass(ctx context.Context, req models.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name is required")
	}

	class := &models.Class{Name: req.Name}
	if err := s.repo.CreateClass(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	s.cache.Invalidate(ctx, classListCacheKey)
	return class, nil
}

// ListClasses returns all classes, newest first.
func (s *ClassService) ListClasses(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if s.cache.Get(ctx, classListCacheKey, &cached) {
		return cached, nil
	}

	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	s.cache.Set(ctx, classListCacheKey, classes)
	return classes, nil
}

// GetClass returns one class.
func (s *ClassService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.GetClass(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// UpdateColumns replaces the class's column list. Existing student payloads
// keep whatever keys they were created with; reads tolerate the mismatch.
func (s *ClassService) UpdateColumns(ctx context.Context, id string, req models.UpdateColumnsRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "columns are required")
	}

	if err := s.repo.UpdateColumns(ctx, id, req.Columns); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update columns")
	}
	s.cache.Invalidate(ctx, classListCacheKey)
	return s.GetClass(ctx, id)
}

// CreateStudent adds a roster entry after verifying the class exists. The
// payload shape is not validated against the class columns.
func (s *ClassService) CreateStudent(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "classId and data are required")
	}

	if _, err := s.GetClass(ctx, req.ClassID); err != nil {
		return nil, err
	}

	student := &models.Student{ClassID: req.ClassID, Data: req.Data}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.cache.Invalidate(ctx, classListCacheKey)
	return student, nil
}

// ListStudents returns the roster for a class.
func (s *ClassService) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	students, err := s.repo.ListStudents(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// UpdateStudent fully replaces a student's payload.
func (s *ClassService) UpdateStudent(ctx context.Context, id string, req models.UpdateStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data is required")
	}

	if err := s.repo.UpdateStudentData(ctx, id, req.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.cache.Invalidate(ctx, classListCacheKey)
	return nil
}

// DeleteStudent removes a roster entry. Unknown ids succeed silently.
func (s *ClassService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.repo.DeleteStudent(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.cache.Invalidate(ctx, classListCacheKey)
	return nil
}
