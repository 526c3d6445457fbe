package rentals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
)

// Repository encapsulates rental persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rentals repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a rental record.
func (r *Repository) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if err := r.db.WithContext(ctx).Create(rental).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

// FindByID loads a rental with its item and both participants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	err := r.withListedAssociations(r.db.WithContext(ctx)).
		First(&rental, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// CompleteActive flips an active rental owned by the lender to completed and
// stamps the return date. Returns the number of rows changed; zero means the
// rental was missing, not owned by the caller, or not active.
func (r *Repository) CompleteActive(ctx context.Context, rentalID, lenderID uuid.UUID, returnedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ? AND lender_id = ? AND status = ?", rentalID, lenderID, enums.RentalStatusActive).
		Updates(map[string]any{
			"status":             enums.RentalStatusCompleted,
			"actual_return_date": returnedAt,
			"updated_at":         returnedAt,
		})
	return result.RowsAffected, result.Error
}

// ListByLender returns all rentals the lender has recorded, newest first.
func (r *Repository) ListByLender(ctx context.Context, lenderID uuid.UUID) ([]models.Rental, error) {
	var records []models.Rental
	err := r.withListedAssociations(r.db.WithContext(ctx)).
		Where("lender_id = ?", lenderID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByRenter returns the rentals the user has taken out, newest first.
func (r *Repository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]models.Rental, error) {
	var records []models.Rental
	err := r.withListedAssociations(r.db.WithContext(ctx)).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) withListedAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Item").
		Preload("Item.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_order ASC")
		}).
		Preload("Renter").
		Preload("Lender")
}
