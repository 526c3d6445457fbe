package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/campuscloset/campuscloset-backend/pkg/db/types"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// Item represents a listing a lender has put up for rent.
type Item struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LenderID           uuid.UUID           `gorm:"column:lender_id;type:uuid;not null;index"`
	Title              string              `gorm:"column:title;not null"`
	Description        *string             `gorm:"column:description"`
	Category           enums.ItemCategory  `gorm:"column:category;not null"`
	Size               string              `gorm:"column:size;not null"`
	RentalPricePerWeek decimal.Decimal     `gorm:"column:rental_price_per_week;type:numeric(10,2);not null"`
	PickupLocation     string              `gorm:"column:pickup_location;not null"`
	MustReturnWashed   bool                `gorm:"column:must_return_washed;not null;default:false"`
	PaymentMethod      enums.PaymentMethod `gorm:"column:payment_method;not null;default:either"`
	ZelleInfo          *string             `gorm:"column:zelle_info"`
	ContactPreferences dbtypes.StringList  `gorm:"column:contact_preferences;type:text;not null;default:'[]'"`
	Status             enums.ItemStatus    `gorm:"column:status;not null;default:available"`
	Lender             *User               `gorm:"foreignKey:LenderID"`
	Photos             []ItemPhoto         `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// ItemPhoto is one image attached to a listing; PhotoOrder drives display order.
type ItemPhoto struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	PhotoURL   string    `gorm:"column:photo_url;not null"`
	PhotoOrder int       `gorm:"column:photo_order;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
