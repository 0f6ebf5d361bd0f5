package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/services"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func respondMessage(c *gin.Context, message string) {
	respondData(c, http.StatusOK, gin.H{"message": message})
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", middleware.GetRequestID(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrAccountDisabled):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrSectionNotFound),
		errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrVersionConflict),
		errors.Is(err, services.ErrTransitionNotAllowed),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidSection),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidSubmission),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidUpload):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
