package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig bounds request throughput per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimitConfig returns the limits applied when configuration
// leaves them unset.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 50, Burst: 100}
}

// bucket is a token bucket refilled lazily on each check.
type bucket struct {
	tokens float64
	last   time.Time
}

func (b *bucket) take(cfg RateLimitConfig, now time.Time) bool {
	b.tokens += now.Sub(b.last).Seconds() * cfg.RequestsPerSecond
	if max := float64(cfg.Burst); b.tokens > max {
		b.tokens = max
	}
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) retryAfter(cfg RateLimitConfig) int {
	if cfg.RequestsPerSecond <= 0 {
		return 1
	}
	return int((1-b.tokens)/cfg.RequestsPerSecond) + 1
}

// RateLimit returns a per-client-IP token-bucket middleware. Exhausted
// clients get 429 with a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimitConfig()
	}

	var mu sync.Mutex
	buckets := make(map[string]*bucket)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()

			mu.Lock()
			b, ok := buckets[c.RealIP()]
			if !ok {
				b = &bucket{tokens: float64(cfg.Burst), last: now}
				buckets[c.RealIP()] = b
			}
			allowed := b.take(cfg, now)
			retry := b.retryAfter(cfg)
			mu.Unlock()

			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64))
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
