package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request, at a level chosen by status.
// Successful health probes and the event stream are not logged.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		startedAt := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest && len(c.Errors) == 0 && isQuietPath(path) {
			return
		}

		fields := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(startedAt),
			"bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	}
}

func isQuietPath(path string) bool {
	switch path {
	case "/ping", "/health", "/metrics", "/api/v1/events", "/api/v1/events/ws":
		return true
	}
	return strings.HasPrefix(path, "/swagger/")
}
