package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-assistant/internal/infra/config"
	"github.com/yanqian/outfit-assistant/pkg/util"
)

func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}
		requestID := c.GetString(requestIDKey)

		attrs := []any{"code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "request_id", requestID, "error", httpErr.Err}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request failed", attrs...)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":      httpErr.Code,
				"message":   message,
				"requestId": requestID,
			},
		})
	}
}

// rateLimitMiddleware keeps one token bucket per client and trigger route, so
// hammering submit does not starve refresh.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newTriggerLimiter(cfg, util.NowUTC)
	return func(c *gin.Context) {
		key := c.ClientIP() + " " + c.FullPath()
		wait, ok := limiter.take(key)
		if ok {
			c.Next()
			return
		}
		logger.Warn("trigger rate limit exceeded", "client", c.ClientIP(), "path", c.FullPath(), "retry_after", wait)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, codeRateLimited, "too many trigger requests", nil))
	}
}

type triggerLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	perSec  float64
	burst   float64
	idle    time.Duration
	now     util.Clock
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newTriggerLimiter(cfg config.RateLimitConfig, now util.Clock) *triggerLimiter {
	return &triggerLimiter{
		buckets: make(map[string]*bucket),
		perSec:  float64(cfg.RequestsPerMinute) / 60,
		burst:   float64(cfg.Burst),
		idle:    5 * time.Minute,
		now:     now,
	}
}

// take spends one token for key. When the bucket is empty it reports how long
// until the next token is available.
func (l *triggerLimiter) take(key string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	} else if elapsed := now.Sub(b.lastSeen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.perSec)
		b.lastSeen = now
	}
	l.evictLocked(now)

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return time.Duration(missing / l.perSec * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (l *triggerLimiter) evictLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, key)
		}
	}
}
