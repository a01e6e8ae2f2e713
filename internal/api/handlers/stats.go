package handlers

import (
	"net/http"
	"time"

	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler handles HTTP requests for dashboard statistics
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats returns the team dashboard snapshot
// @Summary Dashboard snapshot
// @Description Current task/bug counts, sprint completion, recent blockers and tasks due this week
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} service.SnapshotResponse "Snapshot"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	snapshot, err := h.statsService.Snapshot(session.TeamID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetAnalytics returns the daily trend series
// @Summary Trend series
// @Description Seven daily buckets of completed tasks, opened and fixed bugs, and cumulative sprint progress
// @Tags stats
// @Accept json
// @Produce json
// @Param period query string false "Candidate window" Enums(week, month) default(week)
// @Success 200 {object} service.AnalyticsResponse "Series"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /stats/analytics [get]
func (h *StatsHandler) GetAnalytics(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	period := c.DefaultQuery("period", "week")

	analytics, err := h.statsService.Analytics(session.TeamID, period, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
