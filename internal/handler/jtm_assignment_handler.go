package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/models"
	"github.com/akademika-id/siap-smp-api/internal/service"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

type jtmAssignmentService interface {
	List(ctx context.Context, filter models.JtmAssignmentFilter) ([]models.JtmAssignmentDetail, error)
	Validate(ctx context.Context, req service.JtmAssignmentRequest) (*service.ValidationResult, error)
	Create(ctx context.Context, req service.JtmAssignmentRequest) (*models.JtmAssignment, error)
	Remove(ctx context.Context, id string) error
}

// JtmAssignmentHandler handles teaching assignment endpoints.
type JtmAssignmentHandler struct {
	service jtmAssignmentService
}

// NewJtmAssignmentHandler constructs a JTM assignment handler.
func NewJtmAssignmentHandler(svc jtmAssignmentService) *JtmAssignmentHandler {
	return &JtmAssignmentHandler{service: svc}
}

// List godoc
// @Summary List teaching assignments
// @Tags JtmAssignments
// @Produce json
// @Param academicYearId query string false "Filter by academic year"
// @Param teacherId query string false "Filter by teacher"
// @Param classId query string false "Filter by class"
// @Param subjectId query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /jtm-assignments [get]
func (h *JtmAssignmentHandler) List(c *gin.Context) {
	filter := models.JtmAssignmentFilter{
		AcademicYearID: c.Query("academicYearId"),
		TeacherID:      c.Query("teacherId"),
		ClassID:        c.Query("classId"),
		SubjectID:      c.Query("subjectId"),
	}
	assignments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Validate godoc
// @Summary Validate a teaching assignment without creating it
// @Tags JtmAssignments
// @Accept json
// @Produce json
// @Param payload body service.JtmAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /jtm-assignments/validate [post]
func (h *JtmAssignmentHandler) Validate(c *gin.Context) {
	var req service.JtmAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Create a teaching assignment
// @Tags JtmAssignments
// @Accept json
// @Produce json
// @Param payload body service.JtmAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /jtm-assignments [post]
func (h *JtmAssignmentHandler) Create(c *gin.Context) {
	var req service.JtmAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Delete godoc
// @Summary Delete a teaching assignment
// @Tags JtmAssignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /jtm-assignments/{id} [delete]
func (h *JtmAssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
