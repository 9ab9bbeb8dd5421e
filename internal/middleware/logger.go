package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/pkg/logger"
)

// Logger logs every request with its latency and outcome, keyed by the
// request ID set by RequestID.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := log.Zerolog().Info()
		switch {
		case status >= 500:
			event = log.Zerolog().Error()
		case status >= 400:
			event = log.Zerolog().Warn()
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request processed")
	}
}
