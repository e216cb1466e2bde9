package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika-id/siap-smp-api/internal/service"
	appErrors "github.com/akademika-id/siap-smp-api/pkg/errors"
	"github.com/akademika-id/siap-smp-api/pkg/response"
)

// SchoolHandler handles the singleton school profile endpoints.
type SchoolHandler struct {
	service *service.SchoolService
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(svc *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{service: svc}
}

// Get godoc
// @Summary Get the school profile
// @Tags School
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	school, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, school, nil)
}

// Upsert godoc
// @Summary Create or update the school profile
// @Tags School
// @Accept json
// @Produce json
// @Param payload body service.UpsertSchoolRequest true "School payload"
// @Success 200 {object} response.Envelope
// @Router /school [put]
func (h *SchoolHandler) Upsert(c *gin.Context) {
	var req service.UpsertSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	school, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, school, nil)
}
