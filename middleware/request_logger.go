package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, stores a request-scoped
// logger under "logger" and logs the outcome.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		logger := base.With(zap.String("requestId", requestID))
		c.Set("requestId", requestID)
		c.Set("logger", logger)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if c.Writer.Status() >= 500 {
			logger.Error("request failed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
