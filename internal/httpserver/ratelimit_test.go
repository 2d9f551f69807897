package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaphMerc007/WeCook/internal/config"
)

func rateLimitTestHandler(rps, burst int) http.Handler {
	cfg := &config.Config{RateLimitRPS: rps, RateLimitBurst: burst}
	return RateLimitMiddleware(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimitDisabled(t *testing.T) {
	handler := rateLimitTestHandler(0, 0)

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	handler := rateLimitTestHandler(1, 3)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d: expected status 200, got %d", i, codes[i])
		}
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("expected status 429 after burst, got %d", codes[3])
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	handler := rateLimitTestHandler(1, 1)

	first := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first IP to pass, got %d", w.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Errorf("expected distinct IP to have its own bucket, got %d", w.Code)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"plain remote addr", "10.0.0.1:1234", "", "10.0.0.1"},
		{"single forwarded hop", "10.0.0.1:1234", "203.0.113.7", "203.0.113.7"},
		{"multiple forwarded hops", "10.0.0.1:1234", "203.0.113.7, 10.0.0.9", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := extractIP(req); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
