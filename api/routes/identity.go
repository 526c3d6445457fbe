package routes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/api/middleware"
	"github.com/campuscloset/campuscloset-backend/internal/users"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

// identityLoader adapts the users repository to the auth middleware. The
// verification status is read fresh on every request so a rejected account
// loses access immediately, not at token expiry.
type identityLoader struct {
	usersRepo *users.Repository
}

// NewIdentityLoader wraps a users repository for bearer-token resolution.
func NewIdentityLoader(usersRepo *users.Repository) middleware.IdentityLoader {
	return &identityLoader{usersRepo: usersRepo}
}

func (l *identityLoader) LoadIdentity(ctx context.Context, userID uuid.UUID) (middleware.Identity, error) {
	user, err := l.usersRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.Identity{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	} else if err != nil {
		return middleware.Identity{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading identity")
	}

	return middleware.Identity{
		UserID:             user.ID,
		Email:              user.Email,
		VerificationStatus: user.VerificationStatus,
	}, nil
}
