package controllers

import (
	"net/http"
	"strings"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	cartsvc "github.com/casamaria/storefront-backend/internal/cart"
	checkoutsvc "github.com/casamaria/storefront-backend/internal/checkout"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	CartID         string              `json:"cart_id" validate:"required"`
	DeliveryMethod string              `json:"delivery_method" validate:"required"`
	Coords         *checkoutCoordsJSON `json:"coords,omitempty"`
	Address        string              `json:"address,omitempty"`
}

type checkoutCoordsJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Checkout renders the cart as a WhatsApp order message and link. The
// cart itself is left untouched; the client clears it after handoff.
func Checkout(manager *cartsvc.Manager, formatter *checkoutsvc.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseDeliveryMethod(strings.TrimSpace(payload.DeliveryMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method"))
			return
		}

		snap, err := manager.Get(payload.CartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order := checkoutsvc.Order{
			Lines:    snap.Lines,
			Delivery: method,
			Address:  payload.Address,
		}
		if payload.Coords != nil {
			order.Coords = &checkoutsvc.Coordinates{Lat: payload.Coords.Lat, Lng: payload.Coords.Lng}
		}

		result, err := formatter.Format(order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithCartID(r.Context(), snap.ID)
			logg.Info(ctx, "checkout message generated")
		}
		responses.WriteSuccess(w, result)
	}
}
