package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/service"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// ScheduleHandler exposes the placeholder timetable generator.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Regenerate every class timetable for an academic year
// @Tags Schedules
// @Produce json
// @Param yearId path string true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate/{yearId} [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	result, err := h.service.Generate(c.Request.Context(), c.Param("yearId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetByClass godoc
// @Summary Get the generated timetable for a class
// @Tags Schedules
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/class/{classId} [get]
func (h *ScheduleHandler) GetByClass(c *gin.Context) {
	timetable, err := h.service.GetByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}
