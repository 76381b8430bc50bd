package handler

import (
	"context"
	"net/http"

	"cloudnotes/internal/service"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// tokenHeader is the request header carrying the session token.
const tokenHeader = "auth-token"

// UserIDFromContext extracts the authenticated user id from the request
// context. Returns the empty string if no user is authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey).(string)
	return id
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the auth-token header, validates the signature, and injects the
// decoded user id into the request context. A missing or invalid token gets
// a 401; the response does not distinguish the two cases.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(tokenHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Please authenticate using a valid token")
			return
		}

		userID, err := auth.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Please authenticate using a valid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets conservative security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
