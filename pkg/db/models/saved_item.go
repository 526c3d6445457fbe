package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedItem marks an item bookmarked by a user. The (user_id, item_id)
// pair is unique so saving twice stays idempotent.
type SavedItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_saved_items_user_item"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_saved_items_user_item"`
	Item      *Item     `gorm:"foreignKey:ItemID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
