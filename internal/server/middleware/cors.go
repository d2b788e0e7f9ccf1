package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dreamdwell/dreamdwell/internal/transport"
)

// CORS answers cross-origin requests for the listed origins. An empty
// origin list, or one containing "*", admits every origin.
func CORS(origins ...string) func(http.Handler) http.Handler {
	anyOrigin := len(origins) == 0 || slices.Contains(origins, "*")
	static := map[string]string{
		"Access-Control-Allow-Methods":  strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "),
		"Access-Control-Allow-Headers":  strings.Join([]string{"Content-Type", "Authorization", "X-API-Key", transport.RequestIDHeader}, ", "),
		"Access-Control-Expose-Headers": transport.RequestIDHeader,
		"Access-Control-Max-Age":        "86400",
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			switch origin := r.Header.Get("Origin"); {
			case anyOrigin:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			for k, v := range static {
				h.Set(k, v)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
