package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
)

// CreateReviewRequest rates the other participant of a completed rental.
type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	ReviewText *string `json:"review_text,omitempty" validate:"omitempty,max=2000"`
}

// ReviewDTO is the transport shape for one review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	RentalID   uuid.UUID `json:"rental_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	ReviewText *string   `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModel(review *models.Review) *ReviewDTO {
	if review == nil {
		return nil
	}

	return &ReviewDTO{
		ID:         review.ID,
		RentalID:   review.RentalID,
		ReviewerID: review.ReviewerID,
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		CreatedAt:  review.CreatedAt,
	}
}
