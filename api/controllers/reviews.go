package controllers

import (
	"net/http"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	reviewsvc "github.com/casamaria/storefront-backend/internal/reviews"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type reviewListResponse struct {
	Reviews []reviewsvc.Review `json:"reviews"`
	Summary reviewsvc.Summary  `json:"summary"`
}

// PublicListReviews returns all reviews, newest first, with the rating summary.
func PublicListReviews(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}
		responses.WriteSuccess(w, reviewListResponse{
			Reviews: svc.List(r.Context()),
			Summary: svc.Summarize(r.Context()),
		})
	}
}

type createReviewRequest struct {
	Author string `json:"author" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}

// PublicCreateReview publishes a customer review.
func PublicCreateReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Create(r.Context(), reviewsvc.CreateReviewInput{
			Author: payload.Author,
			Rating: payload.Rating,
			Text:   payload.Text,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
