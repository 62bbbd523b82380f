package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// AccessTokenCookie is the cookie that carries the access token for browser clients.
const AccessTokenCookie = "accessToken"

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	Verify(accessToken string) (auth.Claims, error)
}

// UserFinder loads the account behind a verified token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (models.User, error)
}

// ErrorResponder writes an error envelope for a rejected request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Authenticate requires a valid access token from the Authorization header or the
// access token cookie. The caller is stored on the request context.
func Authenticate(tokens TokenVerifier, users UserFinder, reject ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				reject(w, r, content.Unauthenticated("Unauthorized request"))
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logging.FromContext(r.Context()).Warn("access token rejected", "error", err)
				reject(w, r, content.Unauthenticated("Invalid access token"))
				return
			}

			user, err := users.FindByID(r.Context(), claims.Subject)
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				reject(w, r, content.Unauthenticated("Invalid access token"))
				return
			case err != nil:
				reject(w, r, content.Internal("Failed to load user", err))
				return
			}

			ctx := auth.WithUser(r.Context(), user)
			ctx = logging.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
