package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

const requestIDContextKey = "request_id"

// RequestID assigns every request a UUID, reusing the inbound header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDContextKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
