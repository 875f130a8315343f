package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/quizgen_go_server/internal/telemetry"
)

// RequestLog 访问日志中间件
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		telemetry.L().Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}
