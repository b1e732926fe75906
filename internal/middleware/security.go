package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds the response headers that apply to a plain-text endpoint
func SecurityHeaders() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Snapshots are produced fresh on every request
		c.Header("Cache-Control", "no-store")

		c.Next()
	})
}
