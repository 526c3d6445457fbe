package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/users"
	pkgauth "github.com/campuscloset/campuscloset-backend/pkg/auth"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/security"
)

const invalidCredentialsMessage = "Invalid email or password"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	VerifyStudent(ctx context.Context, req VerifyStudentRequest) (*users.UserDTO, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type service struct {
	users  userRepository
	db     *db.Client
	jwtCfg config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo  userRepository
	DB        *db.Client
	JWTConfig config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client is required")
	}
	return &service{
		users:  params.UserRepo,
		db:     params.DB,
		jwtCfg: params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}
	user.LastLoginAt = &now

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: accessToken,
		User:        users.FromModel(user),
	}, nil
}

// VerifyStudent redeems an emailed token and approves the student account.
func (s *service) VerifyStudent(ctx context.Context, req VerifyStudentRequest) (*users.UserDTO, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	var verified *users.UserDTO
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		tokenRepo := NewTokenRepository(tx)
		userRepo := users.NewRepository(tx)

		record, err := tokenRepo.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Verification token not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup token")
		}

		now := time.Now().UTC()
		if record.UsedAt != nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Verification token already used")
		}
		if now.After(record.ExpiresAt) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Verification token expired")
		}

		if err := tokenRepo.MarkUsed(ctx, record.ID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark token used")
		}
		if err := userRepo.UpdateVerificationStatus(ctx, record.UserID, enums.VerificationStatusApproved); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve user")
		}

		user, err := userRepo.FindByID(ctx, record.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
		}
		verified = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return verified, nil
}
