package authz

import (
	"context"

	"github.com/republicadrc/memberkit/pkg/auth"
)

type userContextKey struct{}

// WithUser adds the authenticated user to the context.
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the authenticated user placed by the gate.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*auth.User)
	return user, ok
}
