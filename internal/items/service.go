package items

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	dbtypes "github.com/campuscloset/campuscloset-backend/pkg/db/types"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/pagination"
)

const (
	itemNotFoundMessage   = "Item not found"
	itemRentedEditMessage = "Item is currently rented"
)

// Service exposes business rules for listing management and browsing.
type Service interface {
	Create(ctx context.Context, lenderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Update(ctx context.Context, lenderID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Delete(ctx context.Context, lenderID, itemID uuid.UUID) error
	ListMine(ctx context.Context, lenderID uuid.UUID) ([]ItemDTO, error)
	Feed(ctx context.Context, viewerID uuid.UUID, params pagination.Params) ([]FeedItemDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds an items service backed by the items repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "items repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, lenderID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	category, err := enums.ParseItemCategory(strings.ToLower(strings.TrimSpace(req.Category)))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": req.Category})
	}

	paymentMethod := enums.PaymentMethodEither
	if strings.TrimSpace(req.PaymentMethod) != "" {
		paymentMethod, err = enums.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod)))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
				WithDetails(map[string]any{"payment_method": req.PaymentMethod})
		}
	}

	if !req.RentalPricePerWeek.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental price must be greater than zero")
	}
	pickupLocation := strings.TrimSpace(req.PickupLocation)
	if pickupLocation == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup location is required")
	}
	if len(req.ContactPreferences) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one contact preference is required")
	}

	itemID := uuid.New()
	item := &models.Item{
		ID:                 itemID,
		LenderID:           lenderID,
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Category:           category,
		Size:               strings.TrimSpace(req.Size),
		RentalPricePerWeek: req.RentalPricePerWeek,
		PickupLocation:     pickupLocation,
		MustReturnWashed:   req.MustReturnWashed,
		PaymentMethod:      paymentMethod,
		ZelleInfo:          req.ZelleInfo,
		ContactPreferences: dbtypes.StringList(req.ContactPreferences),
		Status:             enums.ItemStatusAvailable,
		Photos:             photosFromURLs(itemID, req.PhotoURLs),
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	return FromModel(item), nil
}

func (s *service) Update(ctx context.Context, lenderID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	item, err := s.ownedItem(ctx, lenderID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == enums.ItemStatusRented {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, itemRentedEditMessage)
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.Category != nil {
		category, err := enums.ParseItemCategory(strings.ToLower(strings.TrimSpace(*req.Category)))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
				WithDetails(map[string]any{"category": *req.Category})
		}
		updates["category"] = category
	}
	if req.Size != nil {
		updates["size"] = strings.TrimSpace(*req.Size)
	}
	if req.RentalPricePerWeek != nil {
		if !req.RentalPricePerWeek.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental price must be greater than zero")
		}
		updates["rental_price_per_week"] = *req.RentalPricePerWeek
	}
	if req.PickupLocation != nil {
		pickupLocation := strings.TrimSpace(*req.PickupLocation)
		if pickupLocation == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup location is required")
		}
		updates["pickup_location"] = pickupLocation
	}
	if req.MustReturnWashed != nil {
		updates["must_return_washed"] = *req.MustReturnWashed
	}
	if req.PaymentMethod != nil {
		paymentMethod, err := enums.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(*req.PaymentMethod)))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
				WithDetails(map[string]any{"payment_method": *req.PaymentMethod})
		}
		updates["payment_method"] = paymentMethod
	}
	if req.ZelleInfo != nil {
		updates["zelle_info"] = req.ZelleInfo
	}
	if req.ContactPreferences != nil {
		if len(*req.ContactPreferences) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one contact preference is required")
		}
		updates["contact_preferences"] = dbtypes.StringList(*req.ContactPreferences)
	}

	if len(updates) == 0 && req.PhotoURLs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateFields(ctx, itemID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item")
	}

	if req.PhotoURLs != nil {
		if err := s.repo.ReplacePhotos(ctx, itemID, photosFromURLs(itemID, *req.PhotoURLs)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace photos")
		}
	}

	updated, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload item")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, lenderID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, lenderID, itemID)
	if err != nil {
		return err
	}
	if item.Status == enums.ItemStatusRented {
		return pkgerrors.New(pkgerrors.CodeForbidden, itemRentedEditMessage)
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete item")
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, lenderID uuid.UUID) ([]ItemDTO, error) {
	records, err := s.repo.ListByLender(ctx, lenderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	result := make([]ItemDTO, 0, len(records))
	for i := range records {
		result = append(result, *FromModel(&records[i]))
	}
	return result, nil
}

func (s *service) Feed(ctx context.Context, viewerID uuid.UUID, params pagination.Params) ([]FeedItemDTO, error) {
	feed, err := s.repo.Feed(ctx, viewerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed")
	}
	return feed, nil
}

// ownedItem loads the item and hides its existence from non-owners.
func (s *service) ownedItem(ctx context.Context, lenderID, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	if item.LenderID != lenderID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
	}
	return item, nil
}
