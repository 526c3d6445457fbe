package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is feedback left on a completed rental. One review per
// (rental_id, reviewer_id) pair.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RentalID   uuid.UUID `gorm:"column:rental_id;type:uuid;not null;uniqueIndex:idx_reviews_rental_reviewer"`
	ReviewerID uuid.UUID `gorm:"column:reviewer_id;type:uuid;not null;uniqueIndex:idx_reviews_rental_reviewer"`
	RevieweeID uuid.UUID `gorm:"column:reviewee_id;type:uuid;not null;index"`
	Rating     int       `gorm:"column:rating;not null"`
	ReviewText *string   `gorm:"column:review_text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
