package rentals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/items"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

const (
	itemNotAvailableMessage = "Item not found or not available"
	activeRentalMissingMsg  = "Active rental not found"
	endBeforeStartMessage   = "rental end date must be after the start date"
)

// Service drives the rental lifecycle. Both transitions run inside a single
// transaction with a conditional update guarding the state, so concurrent
// callers cannot double-rent an item or double-complete a rental.
type Service interface {
	MarkRented(ctx context.Context, lenderID uuid.UUID, req MarkRentedRequest) (*RentalDTO, error)
	MarkReturned(ctx context.Context, lenderID, rentalID uuid.UUID) (*RentalDTO, error)
	ListLent(ctx context.Context, lenderID uuid.UUID) ([]RentalDTO, error)
	ListRented(ctx context.Context, renterID uuid.UUID) ([]RentalDTO, error)
}

// ServiceParams bundles the dependencies for the rentals service.
type ServiceParams struct {
	DB          *db.Client
	RentalsRepo *Repository
}

type service struct {
	db          *db.Client
	rentalsRepo *Repository
}

// NewService builds a rentals service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client is required")
	}
	if params.RentalsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "rentals repository is required")
	}
	return &service{
		db:          params.DB,
		rentalsRepo: params.RentalsRepo,
	}, nil
}

func (s *service) MarkRented(ctx context.Context, lenderID uuid.UUID, req MarkRentedRequest) (*RentalDTO, error) {
	if req.RenterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "renter id is required")
	}
	if req.RentalStartDate != nil && req.RentalEndDate != nil && req.RentalEndDate.Before(*req.RentalStartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, endBeforeStartMessage)
	}

	var created *models.Rental
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		itemsRepo := items.NewRepository(tx)
		rentalsRepo := NewRepository(tx)

		affected, err := itemsRepo.MarkRented(ctx, req.ItemID, lenderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark item rented")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, itemNotAvailableMessage)
		}

		rental := &models.Rental{
			ID:              uuid.New(),
			ItemID:          req.ItemID,
			RenterID:        req.RenterID,
			LenderID:        lenderID,
			RentalStartDate: req.RentalStartDate,
			RentalEndDate:   req.RentalEndDate,
			Status:          enums.RentalStatusActive,
		}
		if _, err := rentalsRepo.Create(ctx, rental); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rental")
		}
		created = rental
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	full, err := s.rentalsRepo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload rental")
	}
	return FromModel(full), nil
}

func (s *service) MarkReturned(ctx context.Context, lenderID, rentalID uuid.UUID) (*RentalDTO, error) {
	now := time.Now().UTC()

	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		itemsRepo := items.NewRepository(tx)
		rentalsRepo := NewRepository(tx)

		affected, err := rentalsRepo.CompleteActive(ctx, rentalID, lenderID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete rental")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, activeRentalMissingMsg)
		}

		rental, err := rentalsRepo.FindByID(ctx, rentalID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rental")
		}
		if err := itemsRepo.MarkAvailable(ctx, rental.ItemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "release item")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	full, err := s.rentalsRepo.FindByID(ctx, rentalID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload rental")
	}
	return FromModel(full), nil
}

func (s *service) ListLent(ctx context.Context, lenderID uuid.UUID) ([]RentalDTO, error) {
	records, err := s.rentalsRepo.ListByLender(ctx, lenderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rentals")
	}
	return toDTOs(records), nil
}

func (s *service) ListRented(ctx context.Context, renterID uuid.UUID) ([]RentalDTO, error) {
	records, err := s.rentalsRepo.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rentals")
	}
	return toDTOs(records), nil
}

func toDTOs(records []models.Rental) []RentalDTO {
	result := make([]RentalDTO, 0, len(records))
	for i := range records {
		result = append(result, *FromModel(&records[i]))
	}
	return result
}
