package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/models"
	"github.com/akademika-id/siap-smp-api/internal/service"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// TaskAssignmentHandler handles additional task assignment endpoints.
type TaskAssignmentHandler struct {
	service *service.TaskAssignmentService
}

// NewTaskAssignmentHandler constructs a task assignment handler.
func NewTaskAssignmentHandler(svc *service.TaskAssignmentService) *TaskAssignmentHandler {
	return &TaskAssignmentHandler{service: svc}
}

// List godoc
// @Summary List task assignments
// @Tags TaskAssignments
// @Produce json
// @Param academicYearId query string false "Filter by academic year"
// @Param teacherId query string false "Filter by teacher"
// @Success 200 {object} response.Envelope
// @Router /task-assignments [get]
func (h *TaskAssignmentHandler) List(c *gin.Context) {
	filter := models.TaskAssignmentFilter{
		AcademicYearID: c.Query("academicYearId"),
		TeacherID:      c.Query("teacherId"),
	}
	assignments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Create godoc
// @Summary Assign an additional task to a teacher
// @Tags TaskAssignments
// @Accept json
// @Produce json
// @Param payload body service.CreateTaskAssignmentRequest true "Task assignment payload"
// @Success 201 {object} response.Envelope
// @Router /task-assignments [post]
func (h *TaskAssignmentHandler) Create(c *gin.Context) {
	var req service.CreateTaskAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Delete godoc
// @Summary Delete a task assignment
// @Tags TaskAssignments
// @Produce json
// @Param id path string true "Task assignment ID"
// @Success 204
// @Router /task-assignments/{id} [delete]
func (h *TaskAssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
