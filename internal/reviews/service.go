package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscloset/campuscloset-backend/internal/rentals"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/db/models"
	"github.com/campuscloset/campuscloset-backend/pkg/enums"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
)

const (
	completedRentalMissingMsg = "Completed rental not found"
	notParticipantMessage     = "Only rental participants can leave a review"
	duplicateReviewMessage    = "Review already submitted for this rental"
	invalidRatingMessage      = "Rating must be between 1 and 5"
)

// Service records ratings on completed rentals. One review per
// (rental, reviewer) pair, either direction.
type Service interface {
	Create(ctx context.Context, reviewerID, rentalID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error)
	ListForUser(ctx context.Context, revieweeID uuid.UUID) ([]ReviewDTO, error)
}

// ServiceParams bundles the dependencies for the reviews service.
type ServiceParams struct {
	DB          *db.Client
	ReviewsRepo *Repository
	RentalsRepo *rentals.Repository
}

type service struct {
	db          *db.Client
	reviewsRepo *Repository
	rentalsRepo *rentals.Repository
}

// NewService builds a reviews service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client is required")
	}
	if params.ReviewsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reviews repository is required")
	}
	if params.RentalsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "rentals repository is required")
	}
	return &service{
		db:          params.DB,
		reviewsRepo: params.ReviewsRepo,
		rentalsRepo: params.RentalsRepo,
	}, nil
}

func (s *service) Create(ctx context.Context, reviewerID, rentalID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidRatingMessage)
	}

	var created *models.Review
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		rentalsRepo := rentals.NewRepository(tx)
		reviewsRepo := NewRepository(tx)

		rental, err := rentalsRepo.FindByID(ctx, rentalID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, completedRentalMissingMsg)
		} else if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading rental")
		}
		if rental.Status != enums.RentalStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, completedRentalMissingMsg)
		}

		revieweeID, err := counterparty(rental, reviewerID)
		if err != nil {
			return err
		}

		exists, err := reviewsRepo.ExistsForRental(ctx, rentalID, reviewerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking for existing review")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateReviewMessage)
		}

		created, err = reviewsRepo.Create(ctx, &models.Review{
			ID:         uuid.New(),
			RentalID:   rentalID,
			ReviewerID: reviewerID,
			RevieweeID: revieweeID,
			Rating:     req.Rating,
			ReviewText: req.ReviewText,
		})
		if db.IsUniqueViolation(err, "idx_reviews_rental_reviewer") {
			return pkgerrors.New(pkgerrors.CodeConflict, duplicateReviewMessage)
		} else if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(created), nil
}

// counterparty resolves the reviewee as the other side of the rental.
func counterparty(rental *models.Rental, reviewerID uuid.UUID) (uuid.UUID, error) {
	switch reviewerID {
	case rental.RenterID:
		return rental.LenderID, nil
	case rental.LenderID:
		return rental.RenterID, nil
	}
	return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, notParticipantMessage)
}

func (s *service) ListForUser(ctx context.Context, revieweeID uuid.UUID) ([]ReviewDTO, error) {
	records, err := s.reviewsRepo.ListForUser(ctx, revieweeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}

	dtos := make([]ReviewDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos, nil
}
