package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestLogger tags every request with an ID and logs its outcome. Handlers
// retrieve the tagged logger with Logger.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		log := base.With(zap.String("request_id", requestID))
		c.Set(loggerKey, log)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= 500 {
			log.Error("RequestLogger(): request failed", fields...)
			return
		}
		log.Info("RequestLogger(): request served", fields...)
	}
}

// Logger returns the request scoped logger, or a no-op logger outside
// RequestLogger.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
