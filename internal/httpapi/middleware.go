package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pecan/internal/logging"
)

// RequestLogger writes one access-log line per request to gin's default
// writer, skipping the health check.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(p gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s\"\n",
				p.ClientIP,
				p.TimeStamp.Format(time.RFC3339),
				p.Method,
				p.Path,
				p.Request.Proto,
				p.StatusCode,
				p.Latency,
			)
		},
		Output:    gin.DefaultWriter,
		SkipPaths: []string{"/v1/health"},
	})
}

// Recovery turns a panic into a logged error and a JSON 500, matching the
// judge core's convention of reporting request failures uniformly.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.S().Errorw("panic recovered", "error", recovered, "stack", string(debug.Stack()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("%v", recovered)})
	})
}

// CORS allows any origin: the judge API has no session cookies or other
// origin-sensitive credentials to protect.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ipLimiter is one client's token bucket plus the time it was last used,
// so IPRateLimiter can evict entries nobody has used recently.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out an independent token bucket per client IP,
// evicting buckets unused for an hour so the map does not grow unbounded.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter builds a limiter allowing rate requests/sec per IP,
// with the given burst, and starts its background eviction loop.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	irl := &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     r,
		burst:    burst,
	}
	go irl.cleanupLoop()
	return irl
}

func (irl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	irl.mu.Lock()
	defer irl.mu.Unlock()

	l, ok := irl.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(irl.rate, irl.burst)}
		irl.limiters[ip] = l
	}
	l.lastSeen = time.Now()
	return l.limiter
}

func (irl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-time.Hour)
		irl.mu.Lock()
		for ip, l := range irl.limiters {
			if l.lastSeen.Before(cutoff) {
				delete(irl.limiters, ip)
			}
		}
		irl.mu.Unlock()
	}
}

// RateLimit rejects requests over the per-IP limit with a 429. A nil rl
// disables rate limiting (used in tests).
func RateLimit(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil {
			c.Next()
			return
		}
		if !rl.getLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
