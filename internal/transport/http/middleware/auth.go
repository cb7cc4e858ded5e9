package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Identify runs on every request. A missing Authorization header passes
// through anonymously so public routes keep working; a header that is
// present but does not verify aborts the request. On success the user id
// from the token is attached to the request context.
func Identify(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			// "<scheme> <token>" — only the second segment is the token.
			var token string
			if parts := strings.Fields(header); len(parts) >= 2 {
				token = parts[1]
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				writeUnauthorized(w, "token error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth guards a route behind an identity attached by Identify.
// It is a pure presence check and never inspects the token itself.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			writeUnauthorized(w, "need authorization")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the identity Identify attached to the context, if any.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID attaches an identity to the context the same way Identify
// does. Handler tests use it to exercise guarded routes directly.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"errors": map[string][]string{"authorize": {message}},
	})
}
