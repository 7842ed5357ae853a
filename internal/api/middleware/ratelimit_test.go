package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startup-demoday/jurado/internal/config"
	"github.com/startup-demoday/jurado/pkg/logger"
)

func setupRateLimitedRouter(t *testing.T, cfg config.RateLimitConfig) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	router := gin.New()
	router.Use(NewRateLimiter(client, cfg, logger.Nop()).Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, mr
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	router, _ := setupRateLimitedRouter(t, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerWindow: 3,
		WindowSeconds:     10,
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	router, _ := setupRateLimitedRouter(t, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerWindow: 2,
		WindowSeconds:     10,
	})

	assert.Equal(t, http.StatusOK, doRequest(router).Code)
	assert.Equal(t, http.StatusOK, doRequest(router).Code)

	blocked := doRequest(router)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "10", blocked.Header().Get("Retry-After"))
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	router, mr := setupRateLimitedRouter(t, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerWindow: 1,
		WindowSeconds:     10,
	})

	require.Equal(t, http.StatusOK, doRequest(router).Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(router).Code)

	mr.FastForward(11 * time.Second)

	assert.Equal(t, http.StatusOK, doRequest(router).Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	router, _ := setupRateLimitedRouter(t, config.RateLimitConfig{
		Enabled:           false,
		RequestsPerWindow: 1,
		WindowSeconds:     10,
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code)
	}
}

func TestRateLimiterFailsOpenWhenRedisDown(t *testing.T) {
	router, mr := setupRateLimitedRouter(t, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerWindow: 1,
		WindowSeconds:     10,
	})

	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code)
	}
}
