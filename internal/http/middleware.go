package http

import (
	"net/http"
	"strings"
)

const (
	swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"
	apiCSP     = "default-src 'none'; frame-ancestors 'none'"
)

// SecurityHeaders sets the browser hardening headers on every response.
// HSTS is only sent in production, where TLS terminates in front of the API.
func SecurityHeaders(isProduction bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-site")

			if isProduction {
				h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
			}

			if strings.HasPrefix(r.URL.Path, "/swagger/") {
				h.Set("Content-Security-Policy", swaggerCSP)
			} else {
				h.Set("Content-Security-Policy", apiCSP)
			}

			next.ServeHTTP(w, r)
		})
	}
}
