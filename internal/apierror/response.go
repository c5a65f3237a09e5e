package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context with the
// correct Content-Type header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response for validation
// failures. Multiple field errors can be reported at once.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", resource),
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed
// requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewInvalidWeekKeyError creates a 400 Bad Request response for week key
// strings that do not parse as "{year}-{week}".
func NewInvalidWeekKeyError(requestID, key string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidWeekKey,
		Title:       TitleInvalidWeekKey,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("'%s' is not a valid week key", key),
		RequestID:   requestID,
		UserMessage: "Invalid week identifier",
		Errors: []FieldError{
			{Field: "week_key", Message: "must have the form {year}-{week}", Code: "invalid_week_key"},
		},
	}
}

// NewInvalidTimezoneError creates a 400 Bad Request response for IANA zone
// names the timezone database does not know.
func NewInvalidTimezoneError(requestID, tz string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidTimezone,
		Title:       TitleInvalidTimezone,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("'%s' is not a known IANA timezone", tz),
		RequestID:   requestID,
		UserMessage: "Invalid timezone",
		Errors: []FieldError{
			{Field: "timezone", Message: "must be an IANA timezone name", Code: "invalid_timezone"},
		},
	}
}

// NewUnauthorizedError creates a 401 Unauthorized response.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      "Authentication is required to access this resource",
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
		Action:      "authenticate",
	}
}

// NewForbiddenError creates a 403 Forbidden response.
func NewForbiddenError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeForbidden,
		Title:       TitleForbidden,
		Status:      http.StatusForbidden,
		Detail:      "You do not have permission to access this resource",
		RequestID:   requestID,
		UserMessage: "You don't have permission to perform this action",
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// IMPORTANT: this intentionally hides internal error details from the
// client; the actual error should be logged server-side.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}
