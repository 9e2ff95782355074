package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-assistant/internal/infra/config"
)

func TestTriggerLimiterRefills(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	limiter := newTriggerLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2}, func() time.Time { return now })

	_, ok := limiter.take("a")
	require.True(t, ok)
	_, ok = limiter.take("a")
	require.True(t, ok)
	wait, ok := limiter.take("a")
	require.False(t, ok)
	require.Equal(t, time.Second, wait)

	// Buckets are independent per key.
	_, ok = limiter.take("b")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok = limiter.take("a")
	require.True(t, ok)
}

func TestTriggerLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	limiter := newTriggerLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}, func() time.Time { return now })

	_, ok := limiter.take("a")
	require.True(t, ok)
	now = now.Add(10 * time.Minute)
	_, ok = limiter.take("b")
	require.True(t, ok)
	require.NotContains(t, limiter.buckets, "a")
}

func TestRouter_RateLimitedResponseCarriesRetryAfter(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, NewHandler(&stubSession{}, newTestLogger()))

	performRequest(server, http.MethodPost, "/api/v1/recommend", "", "")
	rec := performRequest(server, http.MethodPost, "/api/v1/recommend", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))

	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, codeRateLimited, body["error"]["code"])
	require.NotEmpty(t, body["error"]["requestId"])
	require.Equal(t, rec.Header().Get(requestIDHeader), body["error"]["requestId"])

	// Refresh keeps its own budget.
	require.Equal(t, http.StatusAccepted, performRequest(server, http.MethodPost, "/api/v1/forecast/refresh", "", "").Code)
}

func TestCORSAllowList(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://outfit.example"}
	server := NewRouter(cfg, NewHandler(&stubSession{}, newTestLogger()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
	req.Header.Set("Origin", "https://outfit.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://outfit.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSWildcard(t *testing.T) {
	server := NewRouter(testConfig(), NewHandler(&stubSession{}, newTestLogger()))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://any.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, requestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}
