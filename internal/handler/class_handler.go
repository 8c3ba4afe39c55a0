package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
	"github.com/psgrkcw/faculty-portal-api/pkg/response"
)

// ClassHandler exposes class, roster and export endpoints.
type ClassHandler struct {
	classes *service.ClassService
	exports *service.ExportService
}

// NewClassHandler constructs handler.
func NewClassHandler(classes *service.ClassService, exports *service.ExportService) *ClassHandler {
	return &ClassHandler{classes: classes, exports: exports}
}

// CreateClass godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /class [post]
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class payload"))
		return
	}

	class, err := h.classes.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, class)
}

// ListClasses godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classes.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes, nil)
}

// GetClass godoc
// @Summary Get class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class/{id} [get]
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classes.GetClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, class, nil)
}

// UpdateColumns godoc
// @Summary Replace class columns
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body models.UpdateColumnsRequest true "Columns payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class/{id}/columns [put]
func (h *ClassHandler) UpdateColumns(c *gin.Context) {
	var req models.UpdateColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid columns payload"))
		return
	}

	class, err := h.classes.UpdateColumns(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, class, nil)
}

// CreateStudent godoc
// @Summary Add student to class
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student [post]
func (h *ClassHandler) CreateStudent(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}

	student, err := h.classes.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// ListStudents godoc
// @Summary List class roster
// @Tags Students
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /students/{classId} [get]
func (h *ClassHandler) ListStudents(c *gin.Context) {
	students, err := h.classes.ListStudents(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students, nil)
}

// UpdateStudent godoc
// @Summary Replace student data
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/{id} [put]
func (h *ClassHandler) UpdateStudent(c *gin.Context) {
	var req models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}

	if err := h.classes.UpdateStudent(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "student updated"}, nil)
}

// DeleteStudent godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /student/{id} [delete]
func (h *ClassHandler) DeleteStudent(c *gin.Context) {
	if err := h.classes.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "student deleted"}, nil)
}

// ExportClass godoc
// @Summary Download class roster
// @Description Renders the roster as xlsx (default), csv or pdf
// @Tags Students
// @Produce application/octet-stream
// @Param id path string true "Class ID"
// @Param format query string false "Export format (xlsx, csv, pdf)"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /class/{id}/export [get]
func (h *ClassHandler) ExportClass(c *gin.Context) {
	file, err := h.exports.ExportClass(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
