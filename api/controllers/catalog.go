package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	catalogsvc "github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

// PublicListMenu returns the full menu for the storefront.
func PublicListMenu(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

type createItemRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Price           int64  `json:"price" validate:"min=0"`
	Category        string `json:"category" validate:"required"`
	Image           string `json:"image"`
	Popular         bool   `json:"popular"`
	DiscountPercent int    `json:"discount_percent" validate:"min=0,max=100"`
}

// AdminCreateItem adds a menu item.
func AdminCreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseMenuCategory(strings.TrimSpace(payload.Category))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		item, err := svc.Create(r.Context(), catalogsvc.CreateItemInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Price:           payload.Price,
			Category:        category,
			Image:           payload.Image,
			Popular:         payload.Popular,
			DiscountPercent: payload.DiscountPercent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

type updateItemRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Price           *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Category        *string `json:"category,omitempty"`
	Image           *string `json:"image,omitempty"`
	Popular         *bool   `json:"popular,omitempty"`
	DiscountPercent *int    `json:"discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
}

// AdminUpdateItem applies a partial update to a menu item.
func AdminUpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := chi.URLParam(r, "itemID")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.UpdateItemInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Price:           payload.Price,
			Image:           payload.Image,
			Popular:         payload.Popular,
			DiscountPercent: payload.DiscountPercent,
		}
		if payload.Category != nil {
			category, err := enums.ParseMenuCategory(strings.TrimSpace(*payload.Category))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		item, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// AdminDeleteItem removes a menu item.
func AdminDeleteItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := chi.URLParam(r, "itemID")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"deleted": id})
	}
}

// AdminResetMenu restores the seed menu.
func AdminResetMenu(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.Reset(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}
