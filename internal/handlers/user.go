package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitloop/backend/internal/apierror"
	"github.com/habitloop/backend/internal/models"
	"github.com/habitloop/backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetConfiguration handles GET /api/v1/users/me/configuration
func (h *UserHandler) GetConfiguration(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	user, err := h.userService.GetConfiguration(c.Request.Context(), userID.(string))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateTimezone handles PUT /api/v1/users/me/timezone
func (h *UserHandler) UpdateTimezone(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.UpdateTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid timezone payload"))
		return
	}

	user, err := h.userService.UpdateTimezone(c.Request.Context(), userID.(string), req.Timezone)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "user", ""))
	case errors.Is(err, service.ErrInvalidTimezone):
		apierror.WriteProblem(c, apierror.NewInvalidTimezoneError(requestID, ""))
	default:
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
