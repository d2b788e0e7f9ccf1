package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/internal/server/response"
)

// QueryKeyParam carries the API key for clients that cannot set headers,
// such as browser EventSource and WebSocket.
const QueryKeyParam = "api_key"

// AuthConfig guards routes with a shared API key.
type AuthConfig struct {
	APIKey string
	// HeaderName defaults to X-API-Key. A bearer Authorization header is
	// accepted as well.
	HeaderName  string
	PublicPaths []string
	// QueryPaths additionally accept the key in the api_key query parameter.
	QueryPaths []string
}

func (c AuthConfig) presented(r *http.Request) string {
	if key := r.Header.Get(c.HeaderName); key != "" {
		return key
	}
	if scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if slices.Contains(c.QueryPaths, r.URL.Path) {
		return r.URL.Query().Get(QueryKeyParam)
	}
	return ""
}

// Auth answers 401 to requests outside PublicPaths that do not present the
// key.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	if config.HeaderName == "" {
		config.HeaderName = "X-API-Key"
	}
	want := []byte(config.APIKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(config.PublicPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			key := config.presented(r)
			if key != "" && subtle.ConstantTimeCompare([]byte(key), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn().
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Bool("key_provided", key != "").
				Msg("Authentication failed")
			w.Header().Set("WWW-Authenticate", `Bearer realm="dreamdwell"`)
			response.Abort(w, response.CodeUnauthorized, "Invalid or missing API key",
				"Provide the server key in the "+config.HeaderName+" header")
		})
	}
}
