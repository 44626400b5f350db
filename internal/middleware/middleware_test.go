package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := newEngine(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = c.GetString(RequestIDKey) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS_Wildcard(t *testing.T) {
	r := newEngine(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anything.test")
	w := serve(r, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowList(t *testing.T) {
	r := newEngine(CORS([]string{"http://shop.test"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://shop.test")
	assert.Equal(t, "http://shop.test", serve(r, req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	assert.Empty(t, serve(r, req).Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	r := newEngine(CORS(nil))
	r.OPTIONS("/api/sales", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := serve(r, httptest.NewRequest(http.MethodOptions, "/api/sales", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestErrorHandler_WritesGeneric500(t *testing.T) {
	r := newEngine(ErrorHandler())
	r.GET("/", func(c *gin.Context) { _ = c.Error(errors.New("pq: secret detail")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := newEngine(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error resetting data"})
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"detail":"Error resetting data"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r := newEngine(RateLimiter(2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_RetryAfterFollowsStoreClock(t *testing.T) {
	store := newRateStore()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	r := newEngine(rateLimit(store, 1, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	now = now.Add(44500 * time.Millisecond)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "16", w.Header().Get("Retry-After"))
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(-time.Second))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 30, retryAfterSeconds(30*time.Second))
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newEngine(RateLimiter(0, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestRateStore_WindowResetAndPurge(t *testing.T) {
	s := newRateStore()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ok, _ := s.hit("1.1.1.1", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = s.hit("1.1.1.1", 1, time.Minute)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = s.hit("1.1.1.1", 1, time.Minute)
	assert.True(t, ok, "new window")

	now = now.Add(purgeInterval + time.Minute)
	s.hit("2.2.2.2", 1, time.Minute)
	assert.NotContains(t, s.entries, "1.1.1.1")
	assert.Contains(t, s.entries, "2.2.2.2")
}
