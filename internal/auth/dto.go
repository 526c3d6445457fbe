package auth

import (
	"github.com/campuscloset/campuscloset-backend/internal/users"
)

// RegisterRequest contains the payload required for onboarding a student.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	FullName        string  `json:"full_name" validate:"required,max=120"`
	PhoneNumber     *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Whatsapp        *string `json:"whatsapp,omitempty" validate:"omitempty,max=32"`
	InstagramHandle *string `json:"instagram_handle,omitempty" validate:"omitempty,max=64"`
	GraduationYear  *int    `json:"graduation_year,omitempty" validate:"omitempty,min=2000,max=2100"`
}

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyStudentRequest redeems an emailed verification token.
type VerifyStudentRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse returns the session token and the user it belongs to.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
