package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// Identity is the authenticated caller, re-read from the database on every
// request so verification changes take effect immediately.
type Identity struct {
	UserID             uuid.UUID
	Email              string
	VerificationStatus enums.VerificationStatus
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	if v, ok := ctx.Value(ctxIdentity).(Identity); ok {
		return v, true
	}
	return Identity{}, false
}

// UserIDFromContext returns the authenticated user id or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return uuid.Nil
	}
	return identity.UserID
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
