package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farebd/leasehold/api/internal/logger"
)

// loggerKey is where the request-scoped logger lives in the gin context.
const loggerKey = "logger"

// Logger writes one access-log line per request and stashes a request-scoped
// child logger in the context for handlers to pick up via GetLogger. The line
// level tracks the response class: 5xx logs as error, 4xx as warn.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLog := log.WithRequestID(GetRequestID(c))
		c.Set(loggerKey, reqLog)

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields["query"] = query
		}
		if status >= http.StatusBadRequest && len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("Request completed with server error", nil, fields)
		case status >= http.StatusBadRequest:
			reqLog.Warn("Request completed with client error", fields)
		default:
			reqLog.Info("Request completed", fields)
		}
	}
}

// GetLogger returns the request-scoped logger, or nil when the Logger
// middleware did not run.
func GetLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if reqLog, ok := v.(*logger.Logger); ok {
			return reqLog
		}
	}
	return nil
}
