package auth

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

type ctxKey struct{}

// WithUser stores the authenticated caller on the context.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated caller, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	if ctx == nil {
		return models.User{}, false
	}
	user, ok := ctx.Value(ctxKey{}).(models.User)
	return user, ok && user.ID != ""
}
