package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

// AchievementRepository persists achievement metadata rows.
type AchievementRepository struct {
	db *sqlx.DB
}

// NewAchievementRepository constructs the repository.
func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Create inserts a metadata row. The referenced blob must already be
// committed; the caller owns that ordering.
func (r *AchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	const query = `INSERT INTO achievements (id, title, description, date, file_id, filename, created_at, updated_at)
	VALUES (:id, :title, :description, :date, :file_id, :filename, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("create achievement: %w", err)
	}
	return nil
}

// List returns all achievements, newest first.
func (r *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	const query = `SELECT id, title, description, date, file_id, filename, created_at, updated_at FROM achievements ORDER BY created_at DESC`
	var records []models.Achievement
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return records, nil
}

// GetByID returns one metadata row.
func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*models.Achievement, error) {
	const query = `SELECT id, title, description, date, file_id, filename, created_at, updated_at FROM achievements WHERE id = $1 LIMIT 1`
	var a models.Achievement
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get achievement: %w", err)
	}
	return &a, nil
}

// Update edits the descriptive fields. Returns sql.ErrNoRows when absent.
func (r *AchievementRepository) Update(ctx context.Context, id, title, description, date string) error {
	const query = `UPDATE achievements SET title = $2, description = $3, date = $4, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, title, description, date, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update achievement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check achievement update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a metadata row. Returns sql.ErrNoRows when absent.
func (r *AchievementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check achievement delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
