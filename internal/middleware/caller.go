package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	callerHeader     = "X-User-ID"
	callerContextKey = "callerID"
)

// Caller copies the X-User-ID header into the request context.
// Authentication happens upstream; services decide what the caller may do.
func Caller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(callerHeader)); id != "" {
			c.Set(callerContextKey, id)
		}
		c.Next()
	}
}

// CallerID returns the caller ID set by Caller, or "".
func CallerID(c *gin.Context) string {
	return c.GetString(callerContextKey)
}
