package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// Rental records one lending of an item. LenderID is denormalized from the
// item at creation time so history survives later item edits.
type Rental struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID           uuid.UUID          `gorm:"column:item_id;type:uuid;not null;index"`
	RenterID         uuid.UUID          `gorm:"column:renter_id;type:uuid;not null;index"`
	LenderID         uuid.UUID          `gorm:"column:lender_id;type:uuid;not null;index"`
	RentalStartDate  *time.Time         `gorm:"column:rental_start_date"`
	RentalEndDate    *time.Time         `gorm:"column:rental_end_date"`
	ActualReturnDate *time.Time         `gorm:"column:actual_return_date"`
	Status           enums.RentalStatus `gorm:"column:status;not null;default:active"`
	Item             *Item              `gorm:"foreignKey:ItemID"`
	Renter           *User              `gorm:"foreignKey:RenterID"`
	Lender           *User              `gorm:"foreignKey:LenderID"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
