package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitloop/backend/internal/apierror"
	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/service"
)

type HabitHandler struct {
	habitService service.HabitService
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// CreateHabit handles POST /api/v1/habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid habit payload"))
		return
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// GetHabits handles GET /api/v1/habits
func (h *HabitHandler) GetHabits(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habits, err := h.habitService.GetUserHabits(c.Request.Context(), userID.(string))
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, habits)
}

// GetHabit handles GET /api/v1/habits/:id
func (h *HabitHandler) GetHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habitID := c.Param("id")
	habit, err := h.habitService.GetHabit(c.Request.Context(), userID.(string), habitID)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// UpdateHabit handles PATCH /api/v1/habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habitID := c.Param("id")

	var req models.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid habit payload"))
		return
	}

	habit, err := h.habitService.UpdateHabit(c.Request.Context(), userID.(string), habitID, &req)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// ReorderHabits handles PUT /api/v1/habits/reorder
func (h *HabitHandler) ReorderHabits(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.ReorderHabitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid reorder payload"))
		return
	}

	if err := h.habitService.ReorderHabits(c.Request.Context(), userID.(string), req.HabitIDs); err != nil {
		h.writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habits reordered"})
}

// DeleteHabit handles DELETE /api/v1/habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habitID := c.Param("id")
	if err := h.habitService.DeleteHabit(c.Request.Context(), userID.(string), habitID); err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLog handles POST /api/v1/habits/:id/toggle
func (h *HabitHandler) ToggleLog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habitID := c.Param("id")

	// The body is optional: no date means "toggle today"
	var req models.ToggleLogRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid toggle payload"))
			return
		}
	}

	at := time.Now()
	if req.Date != nil {
		at = *req.Date
	}

	log, err := h.habitService.ToggleLog(c.Request.Context(), userID.(string), habitID, at)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, log)
}

// GetLoggedOn handles GET /api/v1/habits/:id/logged
func (h *HabitHandler) GetLoggedOn(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	habitID := c.Param("id")

	at := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "date must be RFC3339"))
			return
		}
		at = parsed
	}

	log, err := h.habitService.LoggedOn(c.Request.Context(), userID.(string), habitID, at)
	if err != nil {
		h.writeError(c, err, habitID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged": log != nil, "log": log})
}

func (h *HabitHandler) writeError(c *gin.Context, err error, habitID string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "habit", habitID))
	case errors.Is(err, service.ErrUserNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "user", ""))
	case errors.Is(err, service.ErrInvalidTimezone):
		apierror.WriteProblem(c, apierror.NewInvalidTimezoneError(requestID, ""))
	default:
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
