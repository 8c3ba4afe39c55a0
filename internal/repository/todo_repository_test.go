package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

func TestTodoRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	mock.ExpectExec("INSERT INTO todos").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	todo := &models.Todo{UserID: "user-1", Task: "grade papers", Priority: models.PriorityHigh}
	err := repo.Create(context.Background(), todo)
	require.NoError(t, err)
	assert.NotEmpty(t, todo.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "task", "priority", "completed", "created_at", "updated_at"}).
		AddRow("t1", "user-1", "grade papers", "High", false, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, task, priority, completed, created_at, updated_at FROM todos WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(rows)

	todos, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.Equal(t, models.PriorityHigh, todos[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositoryMarkDoneMissingRowSucceeds(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	mock.ExpectExec("UPDATE todos SET completed").
		WithArgs("missing", "user-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkDone(context.Background(), "missing", "user-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositoryDeleteIsOwnerScoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM todos WHERE id = $1 AND user_id = $2")).
		WithArgs("t1", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "t1", "someone-else")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
