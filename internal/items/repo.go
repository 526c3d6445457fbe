package items

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	"github.com/campuscloset/campuscloset-backend/pkg/pagination"
)

// Repository encapsulates listing persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the item together with its photo rows.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an item with its photos in display order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_order ASC")
		}).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateFields applies the given column updates to one item.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ReplacePhotos swaps the full photo set for an item.
func (r *Repository) ReplacePhotos(ctx context.Context, itemID uuid.UUID, photos []models.ItemPhoto) error {
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&models.ItemPhoto{}).Error; err != nil {
		return err
	}
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

// Delete removes the item; photo rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		Delete(&models.ItemPhoto{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

// ListByLender returns every listing owned by the lender, newest first.
func (r *Repository) ListByLender(ctx context.Context, lenderID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_order ASC")
		}).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MarkRented flips an available item owned by the lender to rented. Returns
// the number of rows changed; zero means the item was missing, not owned by
// the caller, or not available.
func (r *Repository) MarkRented(ctx context.Context, itemID, lenderID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND lender_id = ? AND status = ?", itemID, lenderID, enums.ItemStatusAvailable).
		Updates(map[string]any{
			"status":     enums.ItemStatusRented,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// MarkAvailable returns a rented item to the feed.
func (r *Repository) MarkAvailable(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(map[string]any{
			"status":     enums.ItemStatusAvailable,
			"updated_at": time.Now().UTC(),
		}).Error
}

const primaryPhotoSubquery = `(
  SELECT p2.photo_url FROM item_photos p2
  WHERE p2.item_id = i.id
  ORDER BY p2.photo_order ASC, p2.created_at ASC
  LIMIT 1
)`

// Feed returns available listings from other lenders that the viewer has not
// saved, newest first.
func (r *Repository) Feed(ctx context.Context, viewerID uuid.UUID, params pagination.Params) ([]FeedItemDTO, error) {
	params = params.Normalize()

	selectColumns := []string{
		"i.id",
		"i.lender_id",
		"i.title",
		"i.description",
		"i.category",
		"i.size",
		"i.rental_price_per_week",
		"i.pickup_location",
		"i.must_return_washed",
		"i.payment_method",
		"i.created_at",
		"u.full_name AS lender_name",
		"u.phone_number AS lender_phone",
		"u.instagram_handle AS lender_instagram",
		primaryPhotoSubquery + " AS primary_photo_url",
	}

	var records []feedRecord
	err := r.db.WithContext(ctx).
		Table("items i").
		Select(strings.Join(selectColumns, ", ")).
		Joins("JOIN users u ON u.id = i.lender_id").
		Where("i.status = ?", enums.ItemStatusAvailable).
		Where("i.lender_id <> ?", viewerID).
		Where("i.id NOT IN (SELECT si.item_id FROM saved_items si WHERE si.user_id = ?)", viewerID).
		Order("i.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	feed := make([]FeedItemDTO, 0, len(records))
	for _, record := range records {
		feed = append(feed, record.toDTO())
	}
	return feed, nil
}

type feedRecord struct {
	ID                 uuid.UUID       `gorm:"column:id"`
	LenderID           uuid.UUID       `gorm:"column:lender_id"`
	Title              string          `gorm:"column:title"`
	Description        sql.NullString  `gorm:"column:description"`
	Category           string          `gorm:"column:category"`
	Size               string          `gorm:"column:size"`
	RentalPricePerWeek decimal.Decimal `gorm:"column:rental_price_per_week"`
	PickupLocation     string          `gorm:"column:pickup_location"`
	MustReturnWashed   bool            `gorm:"column:must_return_washed"`
	PaymentMethod      string          `gorm:"column:payment_method"`
	LenderName         string          `gorm:"column:lender_name"`
	LenderPhone        sql.NullString  `gorm:"column:lender_phone"`
	LenderInstagram    sql.NullString  `gorm:"column:lender_instagram"`
	PrimaryPhotoURL    sql.NullString  `gorm:"column:primary_photo_url"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
}

func (r feedRecord) toDTO() FeedItemDTO {
	return FeedItemDTO{
		ID:                 r.ID,
		LenderID:           r.LenderID,
		Title:              r.Title,
		Description:        nullStringPtr(r.Description),
		Category:           enums.ItemCategory(r.Category),
		Size:               r.Size,
		RentalPricePerWeek: r.RentalPricePerWeek,
		PickupLocation:     r.PickupLocation,
		MustReturnWashed:   r.MustReturnWashed,
		PaymentMethod:      enums.PaymentMethod(r.PaymentMethod),
		LenderName:         r.LenderName,
		LenderPhone:        nullStringPtr(r.LenderPhone),
		LenderInstagram:    nullStringPtr(r.LenderInstagram),
		PrimaryPhotoURL:    nullStringPtr(r.PrimaryPhotoURL),
		CreatedAt:          r.CreatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
