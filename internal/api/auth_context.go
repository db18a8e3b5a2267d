package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	identityKey  ctxKey = "identity"
	sessionIDKey ctxKey = "sessionID"
)

// IdentityFromContext returns the authenticated identity, or nil when
// the caller is anonymous. Anonymous callers are first-class: favorites
// and profile operations fall back to the shared anonymous scope.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

// SessionIDFromContext returns the session ID behind the presented
// token, or "" for anonymous callers.
func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}

// RequireSession returns the session ID from context.
// Returns 401 error if the caller is not authenticated.
func RequireSession(ctx context.Context) (string, error) {
	sessionID := SessionIDFromContext(ctx)
	if sessionID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return sessionID, nil
}

func setAuth(ctx context.Context, identity *domain.Identity, sessionID string) context.Context {
	ctx = context.WithValue(ctx, identityKey, identity)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// authMiddleware returns a middleware that validates Bearer tokens and
// stores the identity in context. If no token is present or invalid,
// continues anonymously. Handlers use RequireSession where a session
// is mandatory.
func authMiddleware(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[7:]
			identity, sessionID, err := sessions.VerifyAccessToken(token)
			if err != nil {
				// Invalid token - continue anonymously (handler will
				// reject if auth is required).
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setAuth(r.Context(), identity, sessionID)))
		})
	}
}
