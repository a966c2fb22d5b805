package api

import (
	"alcyxob/coaching-marketplace/internal/schedule"
	"alcyxob/coaching-marketplace/internal/service"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// PlanningHandler serves the weekly schedule of one activity.
type PlanningHandler struct {
	planningService service.PlanningService
}

// NewPlanningHandler creates a new PlanningHandler.
func NewPlanningHandler(planningService service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

type PlanningResponse struct {
	Success bool           `json:"success"`
	Data    *schedule.Plan `json:"data"`
}

// GetProductPlanning godoc
// @Summary Get the weekly planning of an activity
// @Tags Planning
// @Produce json
// @Security BearerAuth
// @Param actividad_id query int true "Activity ID"
// @Success 200 {object} PlanningResponse
// @Failure 400 {object} gin.H "Missing or invalid activity id"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Activity not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /get-product-planning [get]
func (h *PlanningHandler) GetProductPlanning(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("actividad_id"))
	if raw == "" {
		abortWithError(c, http.StatusBadRequest, "actividad_id is required")
		return
	}
	activityID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || activityID <= 0 {
		abortWithError(c, http.StatusBadRequest, "actividad_id must be a positive integer")
		return
	}

	plan, err := h.planningService.GetPlanning(c.Request.Context(), activityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidActivityID):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrActivityNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			slog.ErrorContext(c.Request.Context(), "planning failed",
				slog.Int64("activity_id", activityID),
				slog.String("error", err.Error()),
			)
			abortWithError(c, http.StatusInternalServerError, "Failed to load activity planning")
		}
		return
	}

	c.JSON(http.StatusOK, PlanningResponse{Success: true, Data: plan})
}
