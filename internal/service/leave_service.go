package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type leaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	ListByUser(ctx context.Context, userID string) ([]models.Leave, error)
	Update(ctx context.Context, id, reason, fromDate, toDate string) error
	Delete(ctx context.Context, id string) error
}

// LeaveService manages leave requests. The user id is taken from the payload
// and is not enforced as a foreign key; dates are opaque strings.
type LeaveService struct {
	repo      leaveRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeaveService constructs the service.
func NewLeaveService(repo leaveRepository, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LeaveService{repo: repo, validator: validate, logger: logger}
}

// Create stores a leave application.
func (s *LeaveService) Create(ctx context.Context, req models.CreateLeaveRequest) (*models.Leave, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields are required")
	}

	leave := &models.Leave{
		UserID:   req.UserID,
		Reason:   req.Reason,
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save leave")
	}
	return leave, nil
}

// ListByUser returns a user's leave requests, newest first.
func (s *LeaveService) ListByUser(ctx context.Context, userID string) ([]models.Leave, error) {
	leaves, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch leaves")
	}
	if leaves == nil {
		leaves = []models.Leave{}
	}
	return leaves, nil
}

// Update replaces the mutable fields. Unknown ids succeed silently.
func (s *LeaveService) Update(ctx context.Context, id string, req models.UpdateLeaveRequest) error {
	if err := s.repo.Update(ctx, id, req.Reason, req.FromDate, req.ToDate); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update leave")
	}
	return nil
}

// Delete removes a leave request. Unknown ids succeed silently.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete leave")
	}
	return nil
}
