package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

// TodoRepository persists personal tasks.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository constructs the repository.
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new task.
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now

	const query = `INSERT INTO todos (id, user_id, task, priority, completed, created_at, updated_at)
	VALUES (:id, :user_id, :task, :priority, :completed, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// ListByUser returns all tasks for an owner, newest first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	const query = `SELECT id, user_id, task, priority, completed, created_at, updated_at FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// MarkDone sets the completed flag for an owner's task. A zero row count is
// not an error; missing ids are treated as already done.
func (r *TodoRepository) MarkDone(ctx context.Context, id, userID string) error {
	const query = `UPDATE todos SET completed = TRUE, updated_at = $3 WHERE id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark todo done: %w", err)
	}
	return nil
}

// Delete removes an owner's task. Missing ids are a no-op success.
func (r *TodoRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM todos WHERE id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
