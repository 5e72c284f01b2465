package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/models"
	"storefront/utils"
)

// Key type for context
type contextKey string

const (
	UserContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		ctx = context.WithValue(ctx, tokenContextKey, parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || claims.Role != "admin" {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetBearerToken returns the caller's token so it can be forwarded upstream.
func GetBearerToken(ctx context.Context) string {
	tok, _ := ctx.Value(tokenContextKey).(string)
	return tok
}

// Session is the signed-in customer of one request.
type Session struct {
	claims *utils.Claims
}

// SessionFrom reads the customer placed in ctx by AuthMiddleware.
func SessionFrom(ctx context.Context) Session {
	claims, _ := ctx.Value(UserContextKey).(*utils.Claims)
	return Session{claims: claims}
}

func (s Session) CurrentUser() (models.User, bool) {
	if s.claims == nil || s.claims.UserID == "" {
		return models.User{}, false
	}
	return s.claims.User(), true
}
