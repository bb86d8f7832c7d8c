package appMiddleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(rps float64, burst int) *RateLimiter {
	return NewRateLimiter(rps, burst, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func request(ip string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", nil)
	r.RemoteAddr = ip
	return r
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := newTestLimiter(0.001, 2)
	calls := 0
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, request("10.0.0.1:5000"))
		assert.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("10.0.0.1:6000"))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Too many requests")

	// another client has its own bucket
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, request("10.0.0.2:5000"))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 3, calls)
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := newTestLimiter(1, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("10.0.0.2")
	now = now.Add(6 * time.Minute)

	rl.evict()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	rl := newTestLimiter(1, 1)
	require.NoError(t, rl.TrustProxies([]string{"10.0.0.0/8", "::1/128"}))

	withXFF := func(peer string, xff ...string) *http.Request {
		r := request(peer)
		for _, v := range xff {
			r.Header.Add("X-Forwarded-For", v)
		}
		return r
	}

	tests := []struct {
		name string
		req  *http.Request
		want string
	}{
		{"peer with port", request("192.168.1.4:443"), "192.168.1.4"},
		{"peer without port", request("203.0.113.9"), "203.0.113.9"},
		{"untrusted peer ignores header", withXFF("198.51.100.7:5000", "203.0.113.1"), "198.51.100.7"},
		{"trusted proxy reports client", withXFF("10.1.2.3:5000", "203.0.113.1"), "203.0.113.1"},
		{"spoofed leftmost entry is skipped", withXFF("10.1.2.3:5000", "1.2.3.4, 203.0.113.1"), "203.0.113.1"},
		{"chained trusted proxies", withXFF("10.1.2.3:5000", "203.0.113.1", "10.9.9.9"), "203.0.113.1"},
		{"only proxies in chain", withXFF("[::1]:5000", "10.9.9.9"), "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rl.clientIP(tt.req))
		})
	}

	assert.Error(t, rl.TrustProxies([]string{"not-a-cidr"}))
}

func TestRateLimiter_SpoofedForwardingHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })

	send := func(h http.Handler, peer string, headers map[string]string) int {
		r := request(peer)
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Code
	}

	t.Run("direct client cannot rotate buckets", func(t *testing.T) {
		rl := newTestLimiter(0.001, 1)
		h := CapturePeer(middleware.RealIP(rl.Limit(ok)))

		assert.Equal(t, http.StatusCreated, send(h, "198.51.100.7:5000", map[string]string{"X-Forwarded-For": "1.1.1.1"}))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "198.51.100.7:5001", map[string]string{"X-Forwarded-For": "2.2.2.2"}))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "198.51.100.7:5002", map[string]string{"X-Real-IP": "3.3.3.3"}))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "198.51.100.7:5003", map[string]string{"True-Client-IP": "4.4.4.4"}))
	})

	t.Run("client behind proxy cannot rotate buckets", func(t *testing.T) {
		rl := newTestLimiter(0.001, 1)
		require.NoError(t, rl.TrustProxies([]string{"10.0.0.0/8"}))
		h := CapturePeer(middleware.RealIP(rl.Limit(ok)))

		assert.Equal(t, http.StatusCreated, send(h, "10.0.0.5:80", map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.1"}))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "10.0.0.5:80", map[string]string{"X-Forwarded-For": "2.2.2.2, 203.0.113.1"}))
		// a different client through the same proxy has its own bucket
		assert.Equal(t, http.StatusCreated, send(h, "10.0.0.5:80", map[string]string{"X-Forwarded-For": "203.0.113.2"}))
	})
}
