package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/internal/transport"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChainOrder(t *testing.T) {
	var calls []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("outer"), mark("inner"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls = append(calls, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, calls)
}

func TestLoggerRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	var seen string
	h := Logger(tl.Logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(transport.RequestIDHeader))
	assert.True(t, tl.Contains(`"status":418`))
	assert.True(t, tl.Contains(seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(transport.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "req-123", seen)
}

func TestLoggerKeepsFlusher(t *testing.T) {
	h := Logger(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, isFlusher := w.(http.Flusher)
		_, isHijacker := w.(http.Hijacker)
		assert.True(t, isFlusher)
		assert.True(t, isHijacker)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logging.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestCORS(t *testing.T) {
	h := CORS("https://dreamdwell.example")(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://dreamdwell.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://dreamdwell.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, transport.RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSAnyOrigin(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	CORS()(ok).ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth(t *testing.T) {
	h := Auth(AuthConfig{
		APIKey:      "s3cret",
		PublicPaths: []string{"/health"},
		QueryPaths:  []string{"/api/v1/updates/stream"},
	}, logging.NewNopLogger())(ok)

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		status int
	}{
		{"public path", "/health", "", "", http.StatusOK},
		{"missing key", "/api/v1/properties", "", "", http.StatusUnauthorized},
		{"wrong key", "/api/v1/properties", "X-API-Key", "nope", http.StatusUnauthorized},
		{"header key", "/api/v1/properties", "X-API-Key", "s3cret", http.StatusOK},
		{"bearer key", "/api/v1/properties", "Authorization", "Bearer s3cret", http.StatusOK},
		{"lower case bearer", "/api/v1/properties", "Authorization", "bearer s3cret", http.StatusOK},
		{"basic is not bearer", "/api/v1/properties", "Authorization", "Basic s3cret", http.StatusUnauthorized},
		{"query key on stream", "/api/v1/updates/stream?api_key=s3cret", "", "", http.StatusOK},
		{"query key elsewhere", "/api/v1/properties?api_key=s3cret", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(NewRateLimiter(2, logging.NewNopLogger()))(ok)

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)
	limited := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code)
}

func TestRateLimitWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, logging.NewNopLogger())
	rl.Window = 20 * time.Millisecond

	allowed, _ := rl.take("a")
	assert.True(t, allowed)
	allowed, wait := rl.take("a")
	assert.False(t, allowed)
	assert.LessOrEqual(t, wait, 20*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	allowed, _ = rl.take("a")
	assert.True(t, allowed)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
