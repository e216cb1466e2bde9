package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/service"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// ReportHandler streams rendered workload exports.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// WorkloadRecap godoc
// @Summary Export the teacher workload recap for an academic year
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param yearId path string true "Academic year ID"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} binary
// @Router /reports/workloads/{yearId} [get]
func (h *ReportHandler) WorkloadRecap(c *gin.Context) {
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.service.WorkloadRecap(c.Request.Context(), c.Param("yearId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
