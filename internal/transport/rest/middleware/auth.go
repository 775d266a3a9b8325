package middleware

import (
	"context"
	"net/http"
	"strings"

	"mindscreen/internal/model"
)

type contextKey string

const CounsellorIDKey contextKey = "counsellorId"

// TokenValidator checks counsellor bearer tokens
type TokenValidator interface {
	ValidateCounsellorToken(token string) (*model.CounsellorClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	auth TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireCounsellor validates counsellor JWT from Authorization header
func (m *AuthMiddleware) RequireCounsellor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.auth.ValidateCounsellorToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), CounsellorIDKey, claims.CounsellorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCounsellorID extracts counsellor ID from context
func GetCounsellorID(ctx context.Context) string {
	if v, ok := ctx.Value(CounsellorIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
