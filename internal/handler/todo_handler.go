package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
	appErrors "github.com/psgrkcw/faculty-portal-api/pkg/errors"
	"github.com/psgrkcw/faculty-portal-api/pkg/response"
)

// TodoHandler exposes the personal task list endpoints.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler constructs handler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// Add godoc
// @Summary Add task
// @Tags Todos
// @Accept json
// @Produce json
// @Param payload body models.CreateTodoRequest true "Task payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /todo/add [post]
func (h *TodoHandler) Add(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}

	todo, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, todo)
}

// List godoc
// @Summary List own tasks
// @Tags Todos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /todo/list [get]
func (h *TodoHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	todos, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, todos, nil)
}

// Done godoc
// @Summary Mark task done
// @Tags Todos
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /todo/done/{id} [put]
func (h *TodoHandler) Done(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.MarkDone(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "task updated"}, nil)
}

// Delete godoc
// @Summary Delete task
// @Tags Todos
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /todo/delete/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "task deleted"}, nil)
}
