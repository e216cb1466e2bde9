package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/models"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

type workloadService interface {
	ComputeWorkload(ctx context.Context, teacherID, academicYearID string) (*models.TeacherWorkload, error)
	ComputeAllWorkloads(ctx context.Context, academicYearID string) ([]models.TeacherWorkload, error)
	FilterByStatus(ctx context.Context, academicYearID string, status models.WorkloadStatus) ([]models.TeacherWorkload, error)
	SummaryStatistics(ctx context.Context, academicYearID string) (*models.WorkloadSummaryStatistics, error)
	WorkloadDetail(ctx context.Context, teacherID, academicYearID string) (*models.WorkloadDetail, error)
}

// WorkloadHandler exposes derived teacher workload views.
type WorkloadHandler struct {
	service workloadService
}

// NewWorkloadHandler constructs a workload handler.
func NewWorkloadHandler(svc workloadService) *WorkloadHandler {
	return &WorkloadHandler{service: svc}
}

func academicYearParam(c *gin.Context) (string, bool) {
	yearID := strings.TrimSpace(c.Query("academicYearId"))
	if yearID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "academicYearId query parameter is required"))
		return "", false
	}
	return yearID, true
}

// List godoc
// @Summary List workloads for every assigned teacher in an academic year
// @Tags Workloads
// @Produce json
// @Param academicYearId query string true "Academic year ID"
// @Param status query string false "Filter by status (kurang|layak|lebih)"
// @Success 200 {object} response.Envelope
// @Router /workloads [get]
func (h *WorkloadHandler) List(c *gin.Context) {
	yearID, ok := academicYearParam(c)
	if !ok {
		return
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		workloads, err := h.service.FilterByStatus(c.Request.Context(), yearID, models.WorkloadStatus(status))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, workloads, nil)
		return
	}
	workloads, err := h.service.ComputeAllWorkloads(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workloads, nil)
}

// Summary godoc
// @Summary Summary statistics across every teacher's workload
// @Tags Workloads
// @Produce json
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /workloads/summary [get]
func (h *WorkloadHandler) Summary(c *gin.Context) {
	yearID, ok := academicYearParam(c)
	if !ok {
		return
	}
	stats, err := h.service.SummaryStatistics(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Get godoc
// @Summary Get one teacher's workload
// @Tags Workloads
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /workloads/{teacherId} [get]
func (h *WorkloadHandler) Get(c *gin.Context) {
	yearID, ok := academicYearParam(c)
	if !ok {
		return
	}
	workload, err := h.service.ComputeWorkload(c.Request.Context(), c.Param("teacherId"), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workload, nil)
}

// Detail godoc
// @Summary Detailed workload breakdown with raw assignment rows
// @Tags Workloads
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Param academicYearId query string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /workloads/{teacherId}/detail [get]
func (h *WorkloadHandler) Detail(c *gin.Context) {
	yearID, ok := academicYearParam(c)
	if !ok {
		return
	}
	detail, err := h.service.WorkloadDetail(c.Request.Context(), c.Param("teacherId"), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
