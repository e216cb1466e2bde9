package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/service"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// AllocationReportHandler exposes per-class allocation progress.
type AllocationReportHandler struct {
	service *service.AllocationReportService
}

// NewAllocationReportHandler constructs an allocation report handler.
func NewAllocationReportHandler(svc *service.AllocationReportService) *AllocationReportHandler {
	return &AllocationReportHandler{service: svc}
}

// Progress godoc
// @Summary Per-class allocation progress against the curriculum ceiling
// @Tags AllocationProgress
// @Produce json
// @Param yearId path string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /allocation-progress/{yearId} [get]
func (h *AllocationReportHandler) Progress(c *gin.Context) {
	progress, err := h.service.AllocationProgress(c.Request.Context(), c.Param("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
