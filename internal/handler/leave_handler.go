package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
	"github.com/psgrkcw/faculty-portal-api/pkg/response"
)

// LeaveHandler exposes leave request endpoints.
type LeaveHandler struct {
	service *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(svc *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: svc}
}

// Create godoc
// @Summary Apply for leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Param payload body models.CreateLeaveRequest true "Leave payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /leave [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	var req models.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}

	leave, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, leave)
}

// ListByUser godoc
// @Summary List leaves for a user
// @Tags Leaves
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /leave/{id} [get]
func (h *LeaveHandler) ListByUser(c *gin.Context) {
	leaves, err := h.service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, leaves, nil)
}

// Update godoc
// @Summary Edit leave request
// @Tags Leaves
// @Accept json
// @Produce json
// @Param id path string true "Leave ID"
// @Param payload body models.UpdateLeaveRequest true "Leave payload"
// @Success 200 {object} response.Envelope
// @Router /leave/{id} [put]
func (h *LeaveHandler) Update(c *gin.Context) {
	var req models.UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "leave updated"}, nil)
}

// Delete godoc
// @Summary Delete leave request
// @Tags Leaves
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Envelope
// @Router /leave/{id} [delete]
func (h *LeaveHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "leave deleted"}, nil)
}
