package models

import "time"

// TodoPriority enumerates task priorities.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "Low"
	PriorityMedium TodoPriority = "Medium"
	PriorityHigh   TodoPriority = "High"
)

// Valid reports whether the priority is one of the known values.
func (p TodoPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a personal task owned by exactly one user.
type Todo struct {
	ID        string       `db:"id" json:"id"`
	UserID    string       `db:"user_id" json:"user_id"`
	Task      string       `db:"task" json:"task"`
	Priority  TodoPriority `db:"priority" json:"priority"`
	Completed bool         `db:"completed" json:"completed"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// CreateTodoRequest is the payload for adding a task.
type CreateTodoRequest struct {
	Task     string       `json:"task" validate:"required"`
	Priority TodoPriority `json:"priority"`
}
