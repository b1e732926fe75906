package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowMethods rejects requests whose method is not listed with 405
func AllowMethods(methods ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(methods))
	for _, m := range methods {
		allowed[m] = true
	}
	allowHeader := strings.Join(methods, ", ")

	return gin.HandlerFunc(func(c *gin.Context) {
		if !allowed[c.Request.Method] {
			c.Header("Allow", allowHeader)
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}

		c.Next()
	})
}
