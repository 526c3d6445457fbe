package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// ItemPhotoDTO is one ordered photo attached to a listing.
type ItemPhotoDTO struct {
	ID         uuid.UUID `json:"id"`
	PhotoURL   string    `json:"photo_url"`
	PhotoOrder int       `json:"photo_order"`
}

// ItemDTO is the full transport shape for a listing.
type ItemDTO struct {
	ID                 uuid.UUID           `json:"id"`
	LenderID           uuid.UUID           `json:"lender_id"`
	Title              string              `json:"title"`
	Description        *string             `json:"description,omitempty"`
	Category           enums.ItemCategory  `json:"category"`
	Size               string              `json:"size"`
	RentalPricePerWeek decimal.Decimal     `json:"rental_price_per_week"`
	PickupLocation     string              `json:"pickup_location"`
	MustReturnWashed   bool                `json:"must_return_washed"`
	PaymentMethod      enums.PaymentMethod `json:"payment_method"`
	ZelleInfo          *string             `json:"zelle_info,omitempty"`
	ContactPreferences []string            `json:"contact_preferences"`
	Status             enums.ItemStatus    `json:"status"`
	Photos             []ItemPhotoDTO      `json:"photos"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// FeedItemDTO is one row of the browse feed, including lender contact info
// and the listing's primary photo.
type FeedItemDTO struct {
	ID                 uuid.UUID           `json:"id"`
	LenderID           uuid.UUID           `json:"lender_id"`
	Title              string              `json:"title"`
	Description        *string             `json:"description,omitempty"`
	Category           enums.ItemCategory  `json:"category"`
	Size               string              `json:"size"`
	RentalPricePerWeek decimal.Decimal     `json:"rental_price_per_week"`
	PickupLocation     string              `json:"pickup_location"`
	MustReturnWashed   bool                `json:"must_return_washed"`
	PaymentMethod      enums.PaymentMethod `json:"payment_method"`
	LenderName         string              `json:"lender_name"`
	LenderPhone        *string             `json:"lender_phone,omitempty"`
	LenderInstagram    *string             `json:"lender_instagram,omitempty"`
	PrimaryPhotoURL    *string             `json:"primary_photo_url,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// CreateItemRequest is the payload for publishing a new listing.
type CreateItemRequest struct {
	Title              string          `json:"title" validate:"required,max=160"`
	Description        *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category           string          `json:"category" validate:"required"`
	Size               string          `json:"size" validate:"required,max=32"`
	RentalPricePerWeek decimal.Decimal `json:"rental_price_per_week"`
	PickupLocation     string          `json:"pickup_location" validate:"required,max=160"`
	MustReturnWashed   bool            `json:"must_return_washed"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	ZelleInfo          *string         `json:"zelle_info,omitempty" validate:"omitempty,max=160"`
	ContactPreferences []string        `json:"contact_preferences" validate:"required,min=1,max=10,dive,max=120"`
	PhotoURLs          []string        `json:"photo_urls,omitempty" validate:"omitempty,max=10,dive,url"`
}

// UpdateItemRequest carries the mutable listing fields. The status column is
// deliberately absent; it only moves through the rental lifecycle.
type UpdateItemRequest struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category           *string          `json:"category,omitempty"`
	Size               *string          `json:"size,omitempty" validate:"omitempty,min=1,max=32"`
	RentalPricePerWeek *decimal.Decimal `json:"rental_price_per_week,omitempty"`
	PickupLocation     *string          `json:"pickup_location,omitempty" validate:"omitempty,min=1,max=160"`
	MustReturnWashed   *bool            `json:"must_return_washed,omitempty"`
	PaymentMethod      *string          `json:"payment_method,omitempty"`
	ZelleInfo          *string          `json:"zelle_info,omitempty" validate:"omitempty,max=160"`
	ContactPreferences *[]string        `json:"contact_preferences,omitempty" validate:"omitempty,min=1,max=10,dive,max=120"`
	PhotoURLs          *[]string        `json:"photo_urls,omitempty" validate:"omitempty,max=10,dive,url"`
}

func FromModel(item *models.Item) *ItemDTO {
	if item == nil {
		return nil
	}

	photos := make([]ItemPhotoDTO, 0, len(item.Photos))
	for _, photo := range item.Photos {
		photos = append(photos, ItemPhotoDTO{
			ID:         photo.ID,
			PhotoURL:   photo.PhotoURL,
			PhotoOrder: photo.PhotoOrder,
		})
	}

	return &ItemDTO{
		ID:                 item.ID,
		LenderID:           item.LenderID,
		Title:              item.Title,
		Description:        item.Description,
		Category:           item.Category,
		Size:               item.Size,
		RentalPricePerWeek: item.RentalPricePerWeek,
		PickupLocation:     item.PickupLocation,
		MustReturnWashed:   item.MustReturnWashed,
		PaymentMethod:      item.PaymentMethod,
		ZelleInfo:          item.ZelleInfo,
		ContactPreferences: append([]string(nil), []string(item.ContactPreferences)...),
		Status:             item.Status,
		Photos:             photos,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func photosFromURLs(itemID uuid.UUID, urls []string) []models.ItemPhoto {
	photos := make([]models.ItemPhoto, 0, len(urls))
	for i, url := range urls {
		photos = append(photos, models.ItemPhoto{
			ID:         uuid.New(),
			ItemID:     itemID,
			PhotoURL:   url,
			PhotoOrder: i,
		})
	}
	return photos
}
