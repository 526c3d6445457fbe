package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

// Service exposes profile reads and updates for the authenticated user.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
}

// UpdateProfileRequest is the HTTP payload for profile edits. Verification
// status and email are deliberately absent from this shape.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=120"`
	PhoneNumber     *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Whatsapp        *string `json:"whatsapp,omitempty" validate:"omitempty,max=32"`
	InstagramHandle *string `json:"instagram_handle,omitempty" validate:"omitempty,max=64"`
	GraduationYear  *int    `json:"graduation_year,omitempty" validate:"omitempty,min=2000,max=2100"`
}

type service struct {
	repo *Repository
}

// NewService builds a profile service backed by the users repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfileDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return PublicFromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	if req.FullName == nil && req.PhoneNumber == nil && req.Whatsapp == nil && req.InstagramHandle == nil && req.GraduationYear == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if err := s.repo.UpdateProfile(ctx, userID, UpdateProfileDTO{
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		Whatsapp:        req.Whatsapp,
		InstagramHandle: req.InstagramHandle,
		GraduationYear:  req.GraduationYear,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	return FromModel(user), nil
}
