package handlers

import (
	"errors"
	"net/http"

	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// respondError maps service errors onto the API status taxonomy. Store
// failures answer with a generic 500; the detail stays server-side.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsAlreadyExists(err), errors.Is(err, apperrors.ErrSelfRemoval):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c).WithField("error", err.Error()).Error("Unhandled error serving request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// unauthorized answers with the uniform 401 body. Handlers behind
// RequireAuth only reach it when the session context is missing.
func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
