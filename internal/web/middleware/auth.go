package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/padel-tournament/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"

	// SessionCookieName is shared with the JSON API so one sign-in serves both
	SessionCookieName = "session"
)

// GetSession retrieves the signed-in session from the request context
// Returns nil if nobody is signed in
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the session in context if the cookie is valid, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromCookie(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
