package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}
}

func TestRateLimiterKeysByIPAndPath(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1:/api/contact"); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := rl.Allow("10.0.0.1:/api/contact"); ok {
		t.Fatalf("second request on same key should be blocked")
	}
	if ok, _ := rl.Allow("10.0.0.2:/api/contact"); !ok {
		t.Fatalf("different ip should not be affected")
	}
	if ok, _ := rl.Allow("10.0.0.1:/api/careers/apply"); !ok {
		t.Fatalf("different path should not be affected")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if ok, _ := rl.Allow("k"); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := rl.Allow("k"); ok {
		t.Fatalf("second request should be blocked")
	}
	time.Sleep(15 * time.Millisecond)
	if ok, _ := rl.Allow("k"); !ok {
		t.Fatalf("request after window should pass")
	}
}
