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

// AchievementHandler exposes certificate record endpoints.
type AchievementHandler struct {
	service   *service.AchievementService
	maxUpload int64
}

// NewAchievementHandler constructs handler.
func NewAchievementHandler(svc *service.AchievementService, maxUpload int64) *AchievementHandler {
	return &AchievementHandler{service: svc, maxUpload: maxUpload}
}

// Create godoc
// @Summary Record achievement
// @Description Stores the certificate file and its metadata
// @Tags Achievements
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param date formData string true "Date"
// @Param file formData file true "Certificate document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /achievements [post]
func (h *AchievementHandler) Create(c *gin.Context) {
	var req models.CreateAchievementRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid achievement payload"))
		return
	}

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

	achievement, err := h.service.Create(c.Request.Context(), req, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, achievement)
}

// List godoc
// @Summary List achievements
// @Tags Achievements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /achievements [get]
func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, achievements, nil)
}

// Download godoc
// @Summary Stream certificate file
// @Tags Achievements
// @Produce application/octet-stream
// @Param id path string true "Achievement ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /achievements/{id}/file [get]
func (h *AchievementHandler) Download(c *gin.Context) {
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

// Update godoc
// @Summary Edit achievement metadata
// @Tags Achievements
// @Accept json
// @Produce json
// @Param id path string true "Achievement ID"
// @Param payload body models.UpdateAchievementRequest true "Achievement payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /achievements/{id} [put]
func (h *AchievementHandler) Update(c *gin.Context) {
	var req models.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid achievement payload"))
		return
	}

	achievement, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, achievement, nil)
}

// Delete godoc
// @Summary Delete achievement
// @Description Removes the record and its certificate file
// @Tags Achievements
// @Produce json
// @Param id path string true "Achievement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /achievements/{id} [delete]
func (h *AchievementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "achievement deleted"}, nil)
}
