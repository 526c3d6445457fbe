package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                 uuid.UUID                `json:"id"`
	Email              string                   `json:"email"`
	FullName           string                   `json:"full_name"`
	PhoneNumber        *string                  `json:"phone_number,omitempty"`
	Whatsapp           *string                  `json:"whatsapp,omitempty"`
	InstagramHandle    *string                  `json:"instagram_handle,omitempty"`
	GraduationYear     *int                     `json:"graduation_year,omitempty"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	LastLoginAt        *time.Time               `json:"last_login_at,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// PublicProfileDTO is the profile shape shown to other students. Email and
// login metadata stay private; contact handles are part of the marketplace
// contract, so they are exposed.
type PublicProfileDTO struct {
	ID                 uuid.UUID                `json:"id"`
	FullName           string                   `json:"full_name"`
	PhoneNumber        *string                  `json:"phone_number,omitempty"`
	Whatsapp           *string                  `json:"whatsapp,omitempty"`
	InstagramHandle    *string                  `json:"instagram_handle,omitempty"`
	GraduationYear     *int                     `json:"graduation_year,omitempty"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time                `json:"created_at"`
}

func PublicFromModel(u *models.User) *PublicProfileDTO {
	if u == nil {
		return nil
	}

	return &PublicProfileDTO{
		ID:                 u.ID,
		FullName:           u.FullName,
		PhoneNumber:        u.PhoneNumber,
		Whatsapp:           u.Whatsapp,
		InstagramHandle:    u.InstagramHandle,
		GraduationYear:     u.GraduationYear,
		VerificationStatus: u.VerificationStatus,
		CreatedAt:          u.CreatedAt,
	}
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	FullName        string
	PhoneNumber     *string
	Whatsapp        *string
	InstagramHandle *string
	GraduationYear  *int
}

// UpdateProfileDTO carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type UpdateProfileDTO struct {
	FullName        *string
	PhoneNumber     *string
	Whatsapp        *string
	InstagramHandle *string
	GraduationYear  *int
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		PhoneNumber:        u.PhoneNumber,
		Whatsapp:           u.Whatsapp,
		InstagramHandle:    u.InstagramHandle,
		GraduationYear:     u.GraduationYear,
		VerificationStatus: u.VerificationStatus,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &models.User{
		ID:                 id,
		Email:              c.Email,
		PasswordHash:       c.PasswordHash,
		FullName:           c.FullName,
		PhoneNumber:        c.PhoneNumber,
		Whatsapp:           c.Whatsapp,
		InstagramHandle:    c.InstagramHandle,
		GraduationYear:     c.GraduationYear,
		VerificationStatus: enums.VerificationStatusPending,
	}
}
