package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/apperrors"
	"social-service/internal/logger"
	"social-service/internal/middleware"
)

// respondError maps a service error onto the response. Forbidden sends the
// caller back to forbiddenRedirect without touching anything.
func respondError(c *gin.Context, err error, forbiddenRedirect string) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err, "invalid input")})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.Message(err, "not found")})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.Redirect(http.StatusSeeOther, forbiddenRedirect)
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusOK, gin.H{"message": apperrors.Message(err, "nothing changed")})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	default:
		_ = c.Error(err)
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.RequestIDFrom(c)).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func intParam(c *gin.Context, name, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label})
		return 0, false
	}
	return id, true
}
