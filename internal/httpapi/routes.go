package httpapi

import (
	"github.com/gin-gonic/gin"

	"pecan/internal/metrics"
)

// NewRouter builds the gin engine exposing /v1/health, /v1/judge, and
// /v1/manager, with CORS, recovery, rate limiting, and Prometheus metrics
// wired in ahead of the route handlers.
func NewRouter(runner Runner, rl *IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(Recovery())
	r.Use(RequestLogger())
	r.Use(CORS())
	r.Use(RateLimit(rl))
	r.Use(metrics.PrometheusMiddleware())

	h := NewHandler(runner)

	r.GET("/v1/health", health)
	r.GET("/metrics", metrics.PrometheusHandler())

	judgeGroup := r.Group("/v1/judge")
	judgeGroup.POST("/judge-single", h.judgeSingle)

	managerGroup := r.Group("/v1/manager")
	managerGroup.GET("/sandbox-status", h.sandboxStatus)

	return r
}
