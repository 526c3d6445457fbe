package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
)

// TokenRepository persists student verification tokens.
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository constructs a token repo bound to the provided GORM DB.
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a fresh verification token for the user.
func (r *TokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*models.EmailToken, error) {
	record := &models.EmailToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByToken loads the token record matching the raw token value.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*models.EmailToken, error) {
	var record models.EmailToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkUsed stamps the token so it cannot be redeemed twice.
func (r *TokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailToken{}).
		Where("id = ?", id).
		UpdateColumn("used_at", at).Error
}
