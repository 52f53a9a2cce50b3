package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/services"
	"github.com/rs/zerolog/log"
)

// respondServiceError maps sentinel service errors onto HTTP responses.
// Anything unclassified becomes a 500 with no internals leaked.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, services.ErrProtectedAccount):
		c.JSON(http.StatusForbidden, gin.H{"error": "account is protected and cannot be deleted"})
	case errors.Is(err, services.ErrReviewAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "review access denied"})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
