package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
	"github.com/edu-market/course-service/internal/validator"
)

// ErrorResponse is the error payload shape shared by every endpoint
type ErrorResponse struct {
	Message          string                      `json:"message"`
	Details          string                      `json:"details,omitempty"`
	ValidationErrors []validator.ValidationError `json:"validation_errors,omitempty"`
}

// BaseHandler provides logging helpers shared by all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// RespondError maps service errors to HTTP responses
func (h *BaseHandler) RespondError(c *gin.Context, err error, fallback string) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message:          "Validation failed",
			ValidationErrors: err.(validator.ValidationErrors),
		})
	case err == services.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case services.IsPermissionDenied(err) || err == services.ErrNotEnrolled:
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case err == services.ErrInvalidActivationLink:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		h.LogError(c, err, fallback)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: fallback,
			Details: err.Error(),
		})
	}
}

func isValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

// ParseIDParam parses a numeric path parameter
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}
