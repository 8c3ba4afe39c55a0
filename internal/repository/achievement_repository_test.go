package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
)

func TestAchievementRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAchievementRepository(db)

	mock.ExpectExec("INSERT INTO achievements").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	a := &models.Achievement{Title: "Best Paper", Description: "NCACT 2025", Date: "2025-02-14", FileID: "blob-1", Filename: "cert.pdf"}
	err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAchievementRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAchievementRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "date", "file_id", "filename", "created_at", "updated_at"}).
		AddRow("a1", "Best Paper", "NCACT 2025", "2025-02-14", "blob-1", "cert.pdf", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, date, file_id, filename, created_at, updated_at FROM achievements ORDER BY created_at DESC")).
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "blob-1", records[0].FileID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAchievementRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAchievementRepository(db)

	mock.ExpectExec("UPDATE achievements SET title").
		WithArgs("missing", "t", "d", "2025-01-01", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "missing", "t", "d", "2025-01-01")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAchievementRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAchievementRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM achievements WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
