package ratelimit

import (
	"net"
	"net/http"

	"github.com/redmonkez12/friend-app/internal/httputil"
	"github.com/redmonkez12/friend-app/internal/logging"
)

const msgTooManyRequests = "Too many requests from this IP, please try again later."

// Middleware rejects requests over the limit with 429. Limiter failures
// let the request through.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("rate limiter unavailable", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("rate limit exceeded", "ip", ip)
				httputil.RespondErrorWithCode(w, msgTooManyRequests, httputil.CodeTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr; RealIP may already have
// replaced it with a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
