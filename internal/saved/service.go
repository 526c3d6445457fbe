package saved

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/items"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

// SavedItemDTO wraps the listing included in a bookmark row.
type SavedItemDTO struct {
	Item    items.ItemDTO `json:"item"`
	SavedAt time.Time     `json:"saved_at"`
}

// Service exposes business rules for bookmark management.
type Service interface {
	Save(ctx context.Context, userID, itemID uuid.UUID) error
	Unsave(ctx context.Context, userID, itemID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]SavedItemDTO, error)
}

type service struct {
	savedRepo *Repository
	itemsRepo *items.Repository
}

// NewService builds a saved-items service with the required dependencies.
func NewService(savedRepo *Repository, itemsRepo *items.Repository) (Service, error) {
	if savedRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "saved items repo is required")
	}
	if itemsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "items repo is required")
	}
	return &service{savedRepo: savedRepo, itemsRepo: itemsRepo}, nil
}

// Save bookmarks the item for the user. Saving twice is a no-op.
func (s *service) Save(ctx context.Context, userID, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if _, err := s.itemsRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	if err := s.savedRepo.Add(ctx, userID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save item")
	}
	return nil
}

// Unsave drops the bookmark regardless of prior state.
func (s *service) Unsave(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.savedRepo.Remove(ctx, userID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove saved item")
	}
	return nil
}

// List returns the user's bookmarks, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]SavedItemDTO, error) {
	records, err := s.savedRepo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list saved items")
	}

	result := make([]SavedItemDTO, 0, len(records))
	for _, record := range records {
		if record.Item == nil {
			continue
		}
		result = append(result, SavedItemDTO{
			Item:    *items.FromModel(record.Item),
			SavedAt: record.CreatedAt,
		})
	}
	return result, nil
}
