package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/evotodo/task-tracker-api/internal/errors"
	"github.com/evotodo/task-tracker-api/internal/middleware"
	"github.com/evotodo/task-tracker-api/internal/services"
)

// StatsHandler serves the derived productivity metrics.
type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats recomputes and returns the current user's statistics.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.statsService.ComputeStats(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}
