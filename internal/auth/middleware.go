package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/friend-app/internal/httputil"
	"github.com/redmonkez12/friend-app/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

var errNoUserInContext = errors.New("user id missing from request context")

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth is a middleware that validates the bearer token
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			httputil.RespondErrorWithCode(w, "No token provided", httputil.CodeMissingToken, http.StatusUnauthorized)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			httputil.RespondErrorWithCode(w, "Invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			logging.FromContext(r.Context()).Debug("token rejected", "error", err)
			httputil.RespondErrorWithCode(w, "Invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
		logging.AddFields(ctx, map[string]any{"user_id": claims.UserID})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext extracts the user ID from the request context
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	return userID, ok
}

// CurrentUserID returns the authenticated caller, or an internal error when
// the route is not behind RequireAuth.
func CurrentUserID(ctx context.Context) (int64, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, errNoUserInContext
	}
	return userID, nil
}
