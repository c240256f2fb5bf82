package auth

import (
	"context"
	"errors"
	"net/http"
)

// SessionCookieName is the cookie that carries the opaque session token.
const SessionCookieName = "session"

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values we store.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// It reads the session cookie, resolves the token against the store, and
// puts the owning userID in the request context. A missing, unknown, or
// expired session short-circuits with 401 before the wrapped handler — or
// any user lookup — runs.
func RequireAuth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolveSession(r, sessions)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"unauthorized","message":"valid session required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID set by
// RequireAuth. Returns ("", false) on an anonymous request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromRequest returns the raw session token from the cookie, or ""
// when the cookie is absent. Logout uses this to destroy the right session.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func resolveSession(r *http.Request, sessions *SessionStore) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		// http.ErrNoCookie — the request is simply anonymous
		return "", err
	}

	userID, ok := sessions.Get(cookie.Value)
	if !ok {
		return "", errors.New("auth: unknown or expired session")
	}
	return userID, nil
}
