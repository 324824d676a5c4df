package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bucketcms/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// SubjectKey is the context key for the authenticated admin's username.
const SubjectKey contextKey = "subject"

// Subject returns the authenticated username stored by RequireAuth, or ""
// when the request was not authenticated.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(SubjectKey).(string)
	return s
}

// RequireAuth returns middleware that validates a Bearer JWT and injects the
// token subject into the request context. When enabled is false every
// request passes through unchecked.
func RequireAuth(jwtSecret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
