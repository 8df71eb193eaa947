package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
)

func rateLimitedHandler(cfg RateLimitConfig) (*echo.Echo, echo.HandlerFunc) {
	e := echo.New()
	h := RateLimit(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e, h
}

func TestRateLimit_WithinBurst(t *testing.T) {
	e, h := rateLimitedHandler(RateLimitConfig{RequestsPerSecond: 10, Burst: 5})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("request %d: unexpected error %v", i+1, err)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: X-RateLimit-Limit = %q, want \"10\"", i+1, got)
		}
	}
}

func TestRateLimit_ExhaustedBucketRejects(t *testing.T) {
	e, h := rateLimitedHandler(RateLimitConfig{RequestsPerSecond: 1, Burst: 2})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if err := h(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("request %d: unexpected error %v", i+1, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	err := h(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Error("expected X-RateLimit-Remaining \"0\"")
	}
	retry, convErr := strconv.Atoi(rec.Header().Get("Retry-After"))
	if convErr != nil || retry < 1 {
		t.Errorf("expected Retry-After >= 1, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimit_PerClientIsolation(t *testing.T) {
	e, h := rateLimitedHandler(RateLimitConfig{RequestsPerSecond: 1, Burst: 1})

	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	if err := h(e.NewContext(reqA, httptest.NewRecorder())); err != nil {
		t.Fatalf("first request from A: unexpected error %v", err)
	}

	reqA2 := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA2.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	if err := h(e.NewContext(reqA2, httptest.NewRecorder())); err == nil {
		t.Fatal("second request from A: expected rate limit error")
	}

	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.Header.Set(echo.HeaderXRealIP, "10.0.0.2")
	if err := h(e.NewContext(reqB, httptest.NewRecorder())); err != nil {
		t.Fatalf("first request from B: unexpected error %v", err)
	}
}

func TestRateLimit_ZeroConfigFallsBackToDefaults(t *testing.T) {
	e, h := rateLimitedHandler(RateLimitConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := strconv.FormatFloat(DefaultRateLimitConfig().RequestsPerSecond, 'f', 0, 64)
	if got := rec.Header().Get("X-RateLimit-Limit"); got != want {
		t.Errorf("X-RateLimit-Limit = %q, want %q", got, want)
	}
}

func TestBucket_RetryAfterZeroRate(t *testing.T) {
	b := &bucket{}
	if got := b.retryAfter(RateLimitConfig{}); got != 1 {
		t.Errorf("retryAfter with zero rate = %d, want 1", got)
	}
}
