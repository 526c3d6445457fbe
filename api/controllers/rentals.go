package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campuscloset/campuscloset-backend/api/middleware"
	"github.com/campuscloset/campuscloset-backend/api/responses"
	"github.com/campuscloset/campuscloset-backend/api/validators"
	rentalssvc "github.com/campuscloset/campuscloset-backend/internal/rentals"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/logger"
)

// RentalMarkRented flips an available item to rented and opens an active
// rental, as one atomic transition.
func RentalMarkRented(svc rentalssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rentals service unavailable"))
			return
		}

		var payload rentalssvc.MarkRentedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rental, err := svc.MarkRented(r.Context(), middleware.UserIDFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rental)
	}
}

// RentalMarkReturned completes an active rental and releases the item.
func RentalMarkReturned(svc rentalssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rentals service unavailable"))
			return
		}

		var payload markReturnedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rental, err := svc.MarkReturned(r.Context(), middleware.UserIDFromContext(r.Context()), payload.RentalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rental)
	}
}

type markReturnedRequest struct {
	RentalID uuid.UUID `json:"rental_id" validate:"required"`
}

// RentalListLent returns rentals the caller has recorded as a lender.
func RentalListLent(svc rentalssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rentals service unavailable"))
			return
		}

		lent, err := svc.ListLent(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lent)
	}
}

// RentalListRented returns rentals where the caller is the renter.
func RentalListRented(svc rentalssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rentals service unavailable"))
			return
		}

		rented, err := svc.ListRented(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rented)
	}
}
