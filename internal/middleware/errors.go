package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers panics raised while serving a request and answers 500
// without exposing the panic value
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Logger.Error("Panic occurred",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("stack", string(debug.Stack())),
				)

				if !c.Writer.Written() {
					c.String(http.StatusInternalServerError, "Internal server error\n")
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			logger.Logger.Error("Request error",
				zap.Error(err.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("client_ip", c.ClientIP()),
			)

			if !c.Writer.Written() {
				c.String(http.StatusInternalServerError, "Internal server error\n")
			}
		}
	}
}

// RequestLogger logs every scrape at debug level
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.Logger.Debug("HTTP Request",
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
				zap.String("user_agent", param.Request.UserAgent()),
			)
			return ""
		},
		Output: gin.DefaultWriter,
	})
}
