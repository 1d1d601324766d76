package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/telemetry"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with a request id, method and path
// so every log line below the handler carries them, and logs one line per
// request once it completes.
func RequestLogger(metrics *telemetry.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := logger.AddValuesToContext(c.Request.Context(), map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(ctx)

		metrics.RequestStarted(ctx)
		c.Next()

		elapsed := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestFinished(ctx, c.Request.Method, route, c.Writer.Status(), elapsed)

		entry := logger.Logger(ctx).WithField("status", c.Writer.Status()).WithField("latency", elapsed.String())
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
