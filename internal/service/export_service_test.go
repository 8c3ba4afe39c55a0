package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
)

type mockExportRepo struct {
	class       *models.Class
	students    []models.Student
	getClassErr error
}

func (m *mockExportRepo) GetClass(ctx context.Context, id string) (*models.Class, error) {
	if m.getClassErr != nil {
		return nil, m.getClassErr
	}
	return m.class, nil
}

func (m *mockExportRepo) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	return m.students, nil
}

func rosterRepo() *mockExportRepo {
	return &mockExportRepo{
		class: &models.Class{ID: "class-1", Name: "III B.Sc CS", Columns: []string{"registerNo", "name", "phone"}},
		students: []models.Student{
			{ID: "s1", Data: models.StudentData{"registerNo": "101", "name": "Priya", "phone": "9876500001"}},
			// Missing phone plus a key outside the column list.
			{ID: "s2", Data: models.StudentData{"registerNo": "102", "name": "Divya", "hostel": "A"}},
		},
	}
}

func TestExportMissingClass(t *testing.T) {
	svc := NewExportService(&mockExportRepo{getClassErr: sql.ErrNoRows}, nil)

	_, err := svc.ExportClass(context.Background(), "missing", "")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(rosterRepo(), nil)

	_, err := svc.ExportClass(context.Background(), "class-1", "docx")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportEmptyColumnList(t *testing.T) {
	repo := rosterRepo()
	repo.class.Columns = nil
	svc := NewExportService(repo, nil)

	_, err := svc.ExportClass(context.Background(), "class-1", "csv")
	require.Error(t, err)
	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportDefaultsToXLSX(t *testing.T) {
	svc := NewExportService(rosterRepo(), nil)

	file, err := svc.ExportClass(context.Background(), "class-1", "")
	require.NoError(t, err)
	assert.Equal(t, "students.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close() //nolint:errcheck

	header, err := wb.GetCellValue("Students", "A1")
	require.NoError(t, err)
	assert.Equal(t, "REGISTERNO", header)

	name, err := wb.GetCellValue("Students", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Priya", name)

	// Missing payload key renders as an empty cell.
	phone, err := wb.GetCellValue("Students", "C3")
	require.NoError(t, err)
	assert.Equal(t, "", phone)
}

func TestExportCSVProjection(t *testing.T) {
	svc := NewExportService(rosterRepo(), nil)

	file, err := svc.ExportClass(context.Background(), "class-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "students.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	got := string(file.Content)
	assert.Contains(t, got, "REGISTERNO,NAME,PHONE")
	assert.Contains(t, got, "101,Priya,9876500001")
	// Extra key dropped, missing key empty.
	assert.Contains(t, got, "102,Divya,")
	assert.NotContains(t, got, "hostel")
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(rosterRepo(), nil)

	file, err := svc.ExportClass(context.Background(), "class-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "students.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}
