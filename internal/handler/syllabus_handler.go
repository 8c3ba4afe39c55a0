package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psgrkcw/faculty-portal-api/internal/service"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
	"github.com/psgrkcw/faculty-portal-api/pkg/response"
)

// SyllabusHandler exposes syllabus upload, listing, streaming and deletion.
type SyllabusHandler struct {
	service   *service.SyllabusService
	maxUpload int64
}

// NewSyllabusHandler constructs handler.
func NewSyllabusHandler(svc *service.SyllabusService, maxUpload int64) *SyllabusHandler {
	return &SyllabusHandler{service: svc, maxUpload: maxUpload}
}

// Upload godoc
// @Summary Upload syllabus PDF
// @Tags Syllabus
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Syllabus document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /syllabus/upload [post]
func (h *SyllabusHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUpload, "file is required"))
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.Error(c, appErrors.Clone(appErrors.ErrUpload, "file exceeds the maximum upload size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUpload.Code, appErrors.ErrUpload.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, info)
}

// List godoc
// @Summary List syllabus documents
// @Tags Syllabus
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /syllabus/list [get]
func (h *SyllabusHandler) List(c *gin.Context) {
	infos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, infos, nil)
}

// Download godoc
// @Summary Stream syllabus PDF
// @Tags Syllabus
// @Produce application/pdf
// @Param id path string true "Syllabus ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /syllabus/pdf/{id} [get]
func (h *SyllabusHandler) Download(c *gin.Context) {
	info, rc, err := h.service.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close() //nolint:errcheck

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", info.Filename),
	}
	c.DataFromReader(http.StatusOK, info.SizeBytes, info.ContentType, rc, headers)
}

// Delete godoc
// @Summary Delete syllabus document
// @Tags Syllabus
// @Produce json
// @Param id path string true "Syllabus ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /syllabus/delete/{id} [post]
func (h *SyllabusHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "syllabus deleted"}, nil)
}
