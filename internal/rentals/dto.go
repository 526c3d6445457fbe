package rentals

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/internal/items"
	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// MarkRentedRequest starts a rental of one of the lender's items. The renter
// must be a registered user; planned dates are optional.
type MarkRentedRequest struct {
	ItemID          uuid.UUID  `json:"item_id" validate:"required"`
	RenterID        uuid.UUID  `json:"renter_id" validate:"required"`
	RentalStartDate *time.Time `json:"rental_start_date,omitempty"`
	RentalEndDate   *time.Time `json:"rental_end_date,omitempty"`
}

// RentalDTO is the transport shape for one rental record. RenterName and
// LenderName come from joined user rows when the repository preloads them.
type RentalDTO struct {
	ID               uuid.UUID          `json:"id"`
	ItemID           uuid.UUID          `json:"item_id"`
	RenterID         uuid.UUID          `json:"renter_id"`
	LenderID         uuid.UUID          `json:"lender_id"`
	RenterName       string             `json:"renter_name,omitempty"`
	LenderName       string             `json:"lender_name,omitempty"`
	RentalStartDate  *time.Time         `json:"rental_start_date,omitempty"`
	RentalEndDate    *time.Time         `json:"rental_end_date,omitempty"`
	ActualReturnDate *time.Time         `json:"actual_return_date,omitempty"`
	Status           enums.RentalStatus `json:"status"`
	Item             *items.ItemDTO     `json:"item,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func FromModel(rental *models.Rental) *RentalDTO {
	if rental == nil {
		return nil
	}

	dto := &RentalDTO{
		ID:               rental.ID,
		ItemID:           rental.ItemID,
		RenterID:         rental.RenterID,
		LenderID:         rental.LenderID,
		RentalStartDate:  rental.RentalStartDate,
		RentalEndDate:    rental.RentalEndDate,
		ActualReturnDate: rental.ActualReturnDate,
		Status:           rental.Status,
		Item:             items.FromModel(rental.Item),
		CreatedAt:        rental.CreatedAt,
		UpdatedAt:        rental.UpdatedAt,
	}
	if rental.Renter != nil {
		dto.RenterName = rental.Renter.FullName
	}
	if rental.Lender != nil {
		dto.LenderName = rental.Lender.FullName
	}
	return dto
}
