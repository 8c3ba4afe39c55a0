package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

// LeaveRepository persists leave requests.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a new leave request.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if leave.CreatedAt.IsZero() {
		leave.CreatedAt = now
	}
	leave.UpdatedAt = now

	const query = `INSERT INTO leaves (id, user_id, reason, from_date, to_date, created_at, updated_at)
	VALUES (:id, :user_id, :reason, :from_date, :to_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, leave); err != nil {
		return fmt.Errorf("create leave: %w", err)
	}
	return nil
}

// ListByUser returns a user's leave requests, newest first.
func (r *LeaveRepository) ListByUser(ctx context.Context, userID string) ([]models.Leave, error) {
	const query = `SELECT id, user_id, reason, from_date, to_date, created_at, updated_at FROM leaves WHERE user_id = $1 ORDER BY created_at DESC`
	var leaves []models.Leave
	if err := r.db.SelectContext(ctx, &leaves, query, userID); err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// Update replaces the mutable fields. Missing ids are a no-op success.
func (r *LeaveRepository) Update(ctx context.Context, id, reason, fromDate, toDate string) error {
	const query = `UPDATE leaves SET reason = $2, from_date = $3, to_date = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, reason, fromDate, toDate, time.Now().UTC()); err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	return nil
}

// Delete removes a leave request. Missing ids are a no-op success.
func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leaves WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	return nil
}
