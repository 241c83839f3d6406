package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/suryamp/echo-chat/internal/service/auth"
	"github.com/suryamp/echo-chat/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(raw string) (string, error)
}

// Auth gates a route group behind a Bearer token and injects the resolved
// user id into the request context. A missing token is 401; a token that
// fails verification is 400, matching the legacy API contract.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw := ""
			if strings.HasPrefix(header, "Bearer ") {
				raw = strings.TrimPrefix(header, "Bearer ")
			}

			userID, err := verifier.VerifyToken(raw)
			if err != nil {
				if errors.Is(err, auth.ErrMissingToken) {
					utils.RespondError(w, http.StatusUnauthorized, "access denied")
					return
				}
				utils.RespondError(w, http.StatusBadRequest, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id attached by Auth, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
