package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
)

// LoggerMiddleware logs HTTP requests using the structured logger.
// Paths listed in skip are not logged.
func LoggerMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, ok := skipped[path]; ok {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		// The request id and user are read from the request context.
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
