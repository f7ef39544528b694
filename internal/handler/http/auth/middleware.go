// Package auth provides optional JWT-based user identification.
//
// Summary requests work anonymously; when a valid Bearer token is present its
// subject claim is attached to the request context so summary activity can be
// attributed to a user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"newsbrief/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Identify is a middleware that resolves the requesting user from a JWT
// Bearer token, when one is supplied.
//
// Behavior:
//   - No Authorization header: the request proceeds anonymously.
//   - Valid Bearer token: the subject claim is stored in the request context.
//   - Malformed or expired token: 401 Unauthorized. A client that sends a
//     token expects to be identified; failing silently would misattribute
//     its activity as anonymous.
func Identify(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Without a configured secret, a token signed with an empty key
		// would verify. Refuse tokens entirely in that case.
		if len(secret) == 0 {
			respond.SafeError(w, http.StatusUnauthorized, errors.New("token authentication is not configured"))
			return
		}

		user, err := validateJWT(authz, secret)
		if err != nil {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser is a middleware that rejects anonymous requests with 401.
// It must be chained after Identify, which performs the token validation.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == "" {
			respond.SafeError(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user ID, or "" for anonymous
// requests.
func UserFromContext(ctx context.Context) string {
	if user, ok := ctx.Value(ctxUser).(string); ok {
		return user
	}
	return ""
}

func validateJWT(authz string, secret []byte) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid sub claim")
	}
	return sub, nil
}
