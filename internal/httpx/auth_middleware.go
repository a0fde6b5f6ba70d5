package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrMissingToken is returned when the Authorization header is absent, is not
// a Bearer header, or carries an empty token.
var ErrMissingToken = errors.New("missing bearer token")

// Authenticator resolves a session token to the owning user's ID.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (string, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// WriteMissingToken writes the 400 used for an absent or empty bearer token.
func WriteMissingToken(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusBadRequest, "MISSING_TOKEN", "Missing or empty bearer token", nil)
}

// WriteUnauthorized writes the 401 used for invalid or expired credentials.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func AuthMiddleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				WriteMissingToken(w, r)
				return
			}

			userID, err := authenticator.AuthenticateToken(r.Context(), token)
			if err != nil {
				WriteUnauthorized(w, r, "Invalid or expired session token")
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
