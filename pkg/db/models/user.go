package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// User represents the canonical campus identity entity.
type User struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email              string                   `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash       string                   `gorm:"column:password_hash;not null"`
	FullName           string                   `gorm:"column:full_name;not null"`
	PhoneNumber        *string                  `gorm:"column:phone_number"`
	Whatsapp           *string                  `gorm:"column:whatsapp"`
	InstagramHandle    *string                  `gorm:"column:instagram_handle"`
	GraduationYear     *int                     `gorm:"column:graduation_year"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;not null;default:pending"`
	LastLoginAt        *time.Time               `gorm:"column:last_login_at"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
