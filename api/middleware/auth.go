package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/api/responses"
	"github.com/campuscloset/campuscloset-backend/api/validators"
	pkgauth "github.com/campuscloset/campuscloset-backend/pkg/auth"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/logger"
)

// IdentityLoader resolves the current identity fields from storage.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID uuid.UUID) (Identity, error)
}

// Authenticated validates the bearer JWT and loads the caller's identity from
// the database on every request.
func Authenticated(cfg config.JWTConfig, loader IdentityLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := validators.BearerToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid or expired token"))
				return
			}

			identity, err := loader.LoadIdentity(ctx, claims.UserID)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid or expired token"))
					return
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithIdentity(ctx, identity)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireVerified allows only users whose student verification is approved.
func RequireVerified(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, ok := IdentityFromContext(ctx)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required"))
				return
			}

			if identity.VerificationStatus != enums.VerificationStatusApproved {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Student verification required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
