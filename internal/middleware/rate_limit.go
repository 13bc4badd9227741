package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit keeps one token bucket per client IP; a bucket unused for expiry
// is dropped.
func RateLimit(every time.Duration, burst int, expiry time.Duration) gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(every), burst), expiry
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please slow down your requests.",
			})
		},
	)
}
