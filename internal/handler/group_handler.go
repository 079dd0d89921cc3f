package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/service"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
	"github.com/yunshan-music/lesson-api/pkg/response"
)

// GroupHandler exposes group composition validation.
type GroupHandler struct {
	service *service.SchedulingService
}

// NewGroupHandler constructs handler.
func NewGroupHandler(svc *service.SchedulingService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// Validate godoc
// @Summary Validate a proposed lesson group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body service.ValidateGroupRequest true "Group payload"
// @Success 200 {object} response.Envelope
// @Router /groups/validate [post]
func (h *GroupHandler) Validate(c *gin.Context) {
	var req service.ValidateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	validation, err := h.service.ValidateGroup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, validation, nil)
}
