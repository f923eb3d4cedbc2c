package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is where the request id lives in the gin context.
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request id on requests and responses.
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id. An id set by an upstream proxy is
// kept so traces stay continuous across hops; otherwise a fresh UUID is
// minted. The id is stored in the context and echoed on the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID returns the request id for the current request, or "" when the
// RequestID middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
