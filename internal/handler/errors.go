package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/library"
	"gamevault/backend/internal/middleware"
	"gamevault/backend/internal/repository"
)

const (
	msgGameNotFound = "Game not found"
	msgServerError  = "Server error"
)

// respondError maps a service error to its HTTP status. Store failures are
// logged and reported with a fixed message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgGameNotFound})
	case errors.Is(err, repository.ErrInvalidGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, library.ErrThrottled):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Sync already ran recently, try again later"})
	case errors.Is(err, library.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.Error("request_failed",
			"request_id", middleware.GetRequestID(c),
			"path", c.FullPath(),
			"err", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
	}
}
