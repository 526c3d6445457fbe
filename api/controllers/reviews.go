package controllers

import (
	"net/http"

	"github.com/campuscloset/campuscloset-backend/api/middleware"
	"github.com/campuscloset/campuscloset-backend/api/responses"
	"github.com/campuscloset/campuscloset-backend/api/validators"
	reviewssvc "github.com/campuscloset/campuscloset-backend/internal/reviews"
	pkgerrors "github.com/campuscloset/campuscloset-backend/pkg/errors"
	"github.com/campuscloset/campuscloset-backend/pkg/logger"
)

// ReviewCreate leaves a rating on a completed rental the caller took part in.
func ReviewCreate(svc reviewssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		rentalID, err := parseIDParam(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewssvc.CreateReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Create(r.Context(), middleware.UserIDFromContext(r.Context()), rentalID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewListForUser returns reviews written about one user.
func ReviewListForUser(svc reviewssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		userID, err := parseIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviews, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reviews)
	}
}
