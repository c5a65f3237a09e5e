package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitloop/backend/internal/apierror"
	"github.com/habitloop/backend/internal/service"
	"github.com/habitloop/backend/internal/week"
)

// StatsHandler serves the analytics endpoints. These are public so habit
// widgets can be embedded without a session; a habit ID is the only
// capability needed.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetCompletionCount handles GET /api/v1/stats/habits/:id/count
func (h *StatsHandler) GetCompletionCount(c *gin.Context) {
	habitID := c.Param("id")

	count, err := h.statsService.CompletionCount(c.Request.Context(), habitID)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit_id": habitID, "count": count})
}

// GetStreak handles GET /api/v1/stats/habits/:id/streak
func (h *StatsHandler) GetStreak(c *gin.Context) {
	habitID := c.Param("id")

	streak, err := h.statsService.CurrentStreak(c.Request.Context(), habitID)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, streak)
}

// GetGoalStats handles GET /api/v1/stats/habits/:id/goal
func (h *StatsHandler) GetGoalStats(c *gin.Context) {
	habitID := c.Param("id")

	// frequency defaults to the habit's own when absent
	frequency := 0
	if raw := c.Query("frequency"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 7 {
			apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), "invalid frequency", "frequency must be between 1 and 7"))
			return
		}
		frequency = parsed
	}

	stats, err := h.statsService.GoalStats(c.Request.Context(), habitID, frequency)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetWeeklyCounts handles GET /api/v1/stats/habits/:id/weeks
func (h *StatsHandler) GetWeeklyCounts(c *gin.Context) {
	habitID := c.Param("id")

	weeks := 6
	if raw := c.Query("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 104 {
			apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), "invalid weeks", "weeks must be between 1 and 104"))
			return
		}
		weeks = parsed
	}

	counts, err := h.statsService.WeeklyCount(c.Request.Context(), habitID, weeks)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetHistogram handles GET /api/v1/stats/histogram?habit_ids=a,b,c
func (h *StatsHandler) GetHistogram(c *gin.Context) {
	raw := c.Query("habit_ids")
	if raw == "" {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), "missing habit_ids", "habit_ids query parameter is required"))
		return
	}

	habitIDs := strings.Split(raw, ",")
	histogram, err := h.statsService.WeeklyHistogram(c.Request.Context(), habitIDs)
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, histogram)
}

func (h *StatsHandler) writeError(c *gin.Context, err error, habitID string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "habit", habitID))
	case errors.Is(err, week.ErrInvalidKey):
		apierror.WriteProblem(c, apierror.NewInvalidWeekKeyError(requestID, ""))
	default:
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
