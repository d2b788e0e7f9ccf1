package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/internal/server/response"
)

// RateLimiter counts requests per client address in fixed windows. A
// client's window opens on its first request and expires after Window.
type RateLimiter struct {
	Limit  int
	Window time.Duration

	mu      sync.Mutex
	windows *gocache.Cache
	logger  *zerolog.Logger
}

// NewRateLimiter allows limit requests per client per minute.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		Limit:   limit,
		Window:  time.Minute,
		windows: gocache.New(time.Minute, 5*time.Minute),
		logger:  logger,
	}
}

// take records one request from key. It reports whether the request fits
// the current window and, when it does not, how long until the window ends.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.windows.Add(key, 1, rl.Window) == nil {
		return true, 0
	}
	n, err := rl.windows.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and Increment
		rl.windows.Set(key, 1, rl.Window)
		return true, 0
	}
	if n <= rl.Limit {
		return true, 0
	}
	_, expires, _ := rl.windows.GetWithExpiration(key)
	return false, time.Until(expires)
}

// RateLimit rejects clients over their window budget with 429.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, wait := rl.take(ip)
			if !ok {
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Dur("retry_after", wait).
					Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				response.Abort(w, response.CodeRateLimited, "", "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the first X-Forwarded-For hop, or the remote host.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
