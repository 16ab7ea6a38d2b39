package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewIPRateLimiterAssignsConfig(t *testing.T) {
	irl := NewIPRateLimiter(rate.Limit(10), 5)
	require.NotNil(t, irl)
	assert.Equal(t, rate.Limit(10), irl.rate)
	assert.Equal(t, 5, irl.burst)
}

func TestIPRateLimiterReusesBucketPerIP(t *testing.T) {
	irl := NewIPRateLimiter(rate.Limit(10), 5)
	l1 := irl.getLimiter("1.2.3.4")
	l2 := irl.getLimiter("1.2.3.4")
	l3 := irl.getLimiter("5.6.7.8")

	assert.Same(t, l1, l2)
	assert.NotSame(t, l1, l3)
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	irl := NewIPRateLimiter(rate.Limit(1), 1)
	r := gin.New()
	r.Use(RateLimit(irl))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestRateLimitAllowsAllWhenNil(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORSSetsHeadersAndHandlesPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryConvertsPanicToJSON500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
