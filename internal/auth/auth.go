package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"ms-showtimes/internal/config"
)

// Caller ID context key
type contextKey string

const (
	CallerIDKey contextKey = "callerID"
)

// GetCallerIDFromContext extracts the calling skill's ID from context
func GetCallerIDFromContext(ctx context.Context) (string, error) {
	callerID, ok := ctx.Value(CallerIDKey).(string)
	if !ok || callerID == "" {
		return "", errors.New("caller ID not found in context")
	}
	return callerID, nil
}

// AuthMiddleware verifies the bearer token on incoming webhook calls
// and puts the caller ID in the request context
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from request
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				log.Printf("Error extracting token: %v", err)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Verify the signature and extract the caller ID
			claims, err := VerifyToken(cfg, token)
			if err != nil {
				log.Printf("Error verifying token: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			callerID, err := ExtractCallerID(claims)
			if err != nil {
				log.Printf("Error extracting caller ID from token: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Add caller ID to request context
			ctx := context.WithValue(r.Context(), CallerIDKey, callerID)

			// Call the next handler with the updated context
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware checks if the token carries the admin role
func AdminMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from request
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				log.Printf("Error extracting token: %v", err)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			claims, err := VerifyToken(cfg, token)
			if err != nil {
				log.Printf("Error verifying token: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if !HasAdminRole(claims) {
				http.Error(w, "Forbidden - Admin access required", http.StatusForbidden)
				return
			}

			// Call the next handler
			next.ServeHTTP(w, r)
		})
	}
}
