package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type todoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	MarkDone(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// TodoService manages the caller's personal task list. Every operation is
// scoped to the owner taken from the verified token claims.
type TodoService struct {
	repo      todoRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTodoService constructs the service.
func NewTodoService(repo todoRepository, validate *validator.Validate, logger *zap.Logger) *TodoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TodoService{repo: repo, validator: validate, logger: logger}
}

// Create adds a task for the owner. An absent or unknown priority falls back
// to Medium.
func (s *TodoService) Create(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "task is required")
	}

	priority := req.Priority
	if !priority.Valid() {
		priority = models.PriorityMedium
	}

	todo := &models.Todo{
		UserID:   userID,
		Task:     req.Task,
		Priority: priority,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add task")
	}
	return todo, nil
}

// List returns the owner's tasks, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch tasks")
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, nil
}

// MarkDone flips the completed flag. Unknown ids succeed silently.
func (s *TodoService) MarkDone(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkDone(ctx, id, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return nil
}

// Delete removes a task. Unknown ids succeed silently.
func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}
