package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(3, time.Minute)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected inside burst", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth request should be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("other keys have their own bucket")
	}

	// One token refills every 20s.
	now = now.Add(21 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Error("expected a refilled token")
	}
}

func TestLimiter_ResetAndEvict(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("second request should be limited")
	}
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("reset key should be allowed")
	}

	l.Allow("b")
	now = now.Add(3 * time.Minute)
	l.Allow("c")
	if l.Len() != 1 {
		t.Errorf("Len = %d, want idle keys evicted", l.Len())
	}
}

func TestMiddleware(t *testing.T) {
	l := New(1, time.Minute)
	h := Middleware(l, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := []int{http.StatusNoContent, http.StatusTooManyRequests}
	for i, want := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/detect-duplicates", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: status %d, want %d", i+1, rec.Code, want)
		}
		if want == http.StatusTooManyRequests && rec.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.7 "}, "10.0.0.1:1", "203.0.113.7"},
		{"remote with port", nil, "192.0.2.1:4000", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
