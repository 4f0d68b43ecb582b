package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(r, b),
	}
}

func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// clientLimiters keeps one limiter per client IP.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*RateLimiter
	limit    rate.Limit
	burst    int
}

func (l *clientLimiters) get(clientIP string) *RateLimiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[clientIP]
	if !exists {
		limiter = NewRateLimiter(l.limit, l.burst)
		l.limiters[clientIP] = limiter
	}
	return limiter
}

func RateLimit(requestsPerMinute int, burst int) gin.HandlerFunc {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	limiters := &clientLimiters{
		limiters: make(map[string]*RateLimiter),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

func APIRateLimit() gin.HandlerFunc {
	return RateLimit(600, 300) // playback polling is chatty
}

// UploadRateLimit guards the background-removal endpoint, which calls a
// paid model.
func UploadRateLimit(perMinute int) gin.HandlerFunc {
	return RateLimit(perMinute, perMinute)
}
