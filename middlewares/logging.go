package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/metrics"
)

// RequestLogger logs every request with slog and records it in m.
func RequestLogger(m *metrics.Metrics) gin.HandlerFunc {

	return func(c *gin.Context) {

		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		elapsed := time.Since(start)
		status := c.Writer.Status()
		m.ObserveHTTP(c.Request.Method, route, status, elapsed)

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", elapsed,
			"client_ip", c.ClientIP(),
		)
	}
}
