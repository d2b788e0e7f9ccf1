package server

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Config controls the listener, the routes and the background services.
type Config struct {
	Host       string
	Port       int
	PathPrefix string

	CORSEnabled bool
	// CORSOrigins limits CORS to these origins. Empty admits any origin.
	CORSOrigins []string

	// APIKey guards every non-health route. Empty disables the check.
	APIKey     string
	AuthHeader string

	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit int
	CacheTTL  time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// SyncInterval re-syncs the catalog on a timer when positive.
	SyncInterval time.Duration
}

// DefaultConfig serves on localhost:8080 under /api/v1.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		PathPrefix:   "/api/v1",
		AuthHeader:   "X-API-Key",
		RateLimit:    100,
		CacheTTL:     5 * time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}
}

// Addr is the host:port to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	verr := &errors.ValidationError{}
	if c.Port < 0 || c.Port > 65535 {
		verr.Add("port", c.Port, "must be between 0 and 65535")
	}
	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		verr.Add("prefix", c.PathPrefix, "must start with /")
	}
	if c.RateLimit < 0 {
		verr.Add("rate-limit", c.RateLimit, "must not be negative")
	}
	if c.CacheTTL < 0 {
		verr.Add("cache-ttl", c.CacheTTL, "must not be negative")
	}
	if c.SyncInterval < 0 {
		verr.Add("sync-interval", c.SyncInterval, "must not be negative")
	}
	return verr.OrNil()
}
