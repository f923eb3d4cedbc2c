package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/farebd/leasehold/api/internal/logger"
)

// Recovery converts a handler panic into a 500 response so one bad request
// cannot take the process down. The panic value and stack are logged through
// the request-scoped logger when one exists, otherwise through log.
//
// The error body is built inline; the shared response helpers live in a
// package that imports this one.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			reqLog := GetLogger(c)
			if reqLog == nil {
				reqLog = log
			}
			requestID := GetRequestID(c)

			reqLog.Error("Panic recovered", fmt.Errorf("panic: %v", v), map[string]interface{}{
				"request_id": requestID,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"stack":      string(debug.Stack()),
			})

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":       "INTERNAL_SERVER_ERROR",
					"message":    "An unexpected error occurred",
					"request_id": requestID,
				},
			})
		}()

		c.Next()
	}
}
