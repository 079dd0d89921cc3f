package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yunshan-music/lesson-api/internal/service"
	appErrors "github.com/yunshan-music/lesson-api/pkg/errors"
	"github.com/yunshan-music/lesson-api/pkg/response"
)

// BlackoutHandler manages blackout rules and slot evaluation.
type BlackoutHandler struct {
	service *service.BlackoutService
}

// NewBlackoutHandler constructs handler.
func NewBlackoutHandler(svc *service.BlackoutService) *BlackoutHandler {
	return &BlackoutHandler{service: svc}
}

// List godoc
// @Summary List blackout rules
// @Tags Blackouts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blackouts [get]
func (h *BlackoutHandler) List(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// Create godoc
// @Summary Create a blackout rule
// @Tags Blackouts
// @Accept json
// @Produce json
// @Param payload body service.CreateBlackoutRuleRequest true "Rule payload"
// @Success 201 {object} response.Envelope
// @Router /blackouts [post]
func (h *BlackoutHandler) Create(c *gin.Context) {
	var req service.CreateBlackoutRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rule, err := h.service.CreateRule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// Delete godoc
// @Summary Delete a blackout rule
// @Tags Blackouts
// @Produce json
// @Param id path string true "Rule ID"
// @Success 204
// @Router /blackouts/{id} [delete]
func (h *BlackoutHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EvaluateSlot godoc
// @Summary Evaluate whether a slot is blocked
// @Tags Blackouts
// @Produce json
// @Param week query int true "Week"
// @Param dayOfWeek query int true "Day of week"
// @Param period query int true "Period"
// @Param classNames query string false "Comma separated class names"
// @Param teacherName query string false "Teacher name"
// @Success 200 {object} response.Envelope
// @Router /blackouts/evaluate [get]
func (h *BlackoutHandler) EvaluateSlot(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "week is required"))
		return
	}
	day, err := strconv.Atoi(c.Query("dayOfWeek"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dayOfWeek is required"))
		return
	}
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period is required"))
		return
	}
	var classNames []string
	if raw := c.Query("classNames"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				classNames = append(classNames, trimmed)
			}
		}
	}

	result, err := h.service.EvaluateSlot(c.Request.Context(), week, day, period, classNames, c.Query("teacherName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
