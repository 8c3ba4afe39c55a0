package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
)

type fakeClassRepo struct {
	class    *models.Class
	students []models.Student
}

func (f *fakeClassRepo) CreateClass(ctx context.Context, class *models.Class) error {
	class.ID = "class-1"
	class.Columns = models.DefaultClassColumns
	return nil
}

func (f *fakeClassRepo) ListClasses(ctx context.Context) ([]models.Class, error) {
	if f.class == nil {
		return nil, nil
	}
	return []models.Class{*f.class}, nil
}

func (f *fakeClassRepo) GetClass(ctx context.Context, id string) (*models.Class, error) {
	if f.class == nil {
		return nil, sql.ErrNoRows
	}
	return f.class, nil
}

func (f *fakeClassRepo) UpdateColumns(ctx context.Context, id string, columns []string) error {
	if f.class == nil {
		return sql.ErrNoRows
	}
	f.class.Columns = columns
	return nil
}

func (f *fakeClassRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	student.ID = "student-1"
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeClassRepo) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	return f.students, nil
}

func (f *fakeClassRepo) UpdateStudentData(ctx context.Context, id string, data models.StudentData) error {
	return sql.ErrNoRows
}

func (f *fakeClassRepo) DeleteStudent(ctx context.Context, id string) error {
	return nil
}

func newClassTestHandler(repo *fakeClassRepo) *ClassHandler {
	classes := service.NewClassService(repo, nil, nil, nil)
	exports := service.NewExportService(repo, nil)
	return NewClassHandler(classes, exports)
}

func TestClassHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newClassTestHandler(&fakeClassRepo{})

	rec, c := postJSON(t, "/class", models.CreateClassRequest{Name: "III B.Sc CS"})
	handler.CreateClass(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "registerNo")
}

func TestClassHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newClassTestHandler(&fakeClassRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/class/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.GetClass(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassHandlerCreateStudentMissingClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newClassTestHandler(&fakeClassRepo{})

	rec, c := postJSON(t, "/student", models.CreateStudentRequest{
		ClassID: "missing",
		Data:    models.StudentData{"name": "Priya"},
	})
	handler.CreateStudent(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassHandlerExportDownloadHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeClassRepo{
		class: &models.Class{ID: "class-1", Name: "III B.Sc CS", Columns: []string{"registerNo", "name", "phone"}},
		students: []models.Student{
			{ID: "s1", ClassID: "class-1", Data: models.StudentData{"registerNo": "101", "name": "Priya"}},
		},
	}
	handler := newClassTestHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/class/class-1/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}
	handler.ExportClass(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestClassHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeClassRepo{
		class: &models.Class{ID: "class-1", Name: "III B.Sc CS", Columns: []string{"name"}},
	}
	handler := newClassTestHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/class/class-1/export?format=docx", nil)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}
	handler.ExportClass(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
