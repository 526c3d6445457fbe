package saved

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
)

// Repository encapsulates saved-item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a saved-items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a saved-item entry and ignores duplicates.
func (r *Repository) Add(ctx context.Context, userID, itemID uuid.UUID) error {
	if userID == uuid.Nil || itemID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO saved_items (id, user_id, item_id, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP) ON CONFLICT (user_id, item_id) DO NOTHING`,
			uuid.New(), userID, itemID).
		Error
}

// Remove deletes the bookmark if it exists.
func (r *Repository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.SavedItem{}).
		Error
}

// List returns the user's bookmarks with their items, newest bookmark first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]models.SavedItem, error) {
	var records []models.SavedItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_order ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
