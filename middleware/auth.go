package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"vitrina/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Auth guards mutation routes with the shared admin secret. The bearer token
// must either equal the secret or be a valid unexpired session token signed
// with it (issued by /api/login). An empty secret fails closed: every request
// gets a 500, never silent operation with a default token.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Sugar.Error("ADMIN_TOKEN is not configured; rejecting admin request")
				http.Error(w, "Server is not configured for admin access", http.StatusInternalServerError)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" || tokenString == authHeader {
				http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
				return
			}

			if tokenString == secret {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
