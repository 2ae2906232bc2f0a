package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d within budget", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Budgets are per key.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RateLimit(2, time.Hour, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = ip
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("1.2.3.4:1000"))
	assert.Equal(t, http.StatusOK, do("1.2.3.4:1000"))
	assert.Equal(t, http.StatusTooManyRequests, do("1.2.3.4:1000"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, do("5.6.7.8:1000"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	assert.Equal(t, "9.9.9.9:1234", clientIP(req))

	req.Header.Set("X-Real-IP", "2.2.2.2")
	assert.Equal(t, "2.2.2.2", clientIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 10.0.0.1")
	assert.Equal(t, "1.1.1.1", clientIP(req))
}
