package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	cartsvc "github.com/casamaria/storefront-backend/internal/cart"
	catalogsvc "github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/casamaria/storefront-backend/pkg/money"
)

type cartResponse struct {
	ID                string         `json:"id"`
	Lines             []cartsvc.Line `json:"lines"`
	ItemCount         int            `json:"item_count"`
	Subtotal          int64          `json:"subtotal"`
	Total             int64          `json:"total"`
	Savings           int64          `json:"savings"`
	SubtotalFormatted string         `json:"subtotal_formatted"`
	TotalFormatted    string         `json:"total_formatted"`
	SavingsFormatted  string         `json:"savings_formatted"`
}

func toCartResponse(snap cartsvc.Snapshot, moneyFmt *money.Formatter) cartResponse {
	return cartResponse{
		ID:                snap.ID,
		Lines:             snap.Lines,
		ItemCount:         snap.ItemCount,
		Subtotal:          snap.Subtotal.Round(0).IntPart(),
		Total:             snap.Total.Round(0).IntPart(),
		Savings:           snap.Savings.Round(0).IntPart(),
		SubtotalFormatted: moneyFmt.Format(snap.Subtotal),
		TotalFormatted:    moneyFmt.Format(snap.Total),
		SavingsFormatted:  moneyFmt.Format(snap.Savings),
	}
}

// CreateCart opens a new cart session.
func CreateCart(manager *cartsvc.Manager, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := manager.Create()
		if logg != nil {
			logg.Info(logg.WithCartID(r.Context(), snap.ID), "cart created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCartResponse(snap, moneyFmt))
	}
}

// GetCart returns the cart with computed totals.
func GetCart(manager *cartsvc.Manager, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := manager.Get(chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(snap, moneyFmt))
	}
}

type addCartItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// AddCartItem adds one unit of a menu item to the cart. The item is
// captured by value, so later menu edits leave the line untouched.
func AddCartItem(manager *cartsvc.Manager, catalog catalogsvc.Service, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := catalog.Get(r.Context(), payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := manager.AddItem(chi.URLParam(r, "cartID"), *item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(snap, moneyFmt))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// SetCartItemQuantity sets a line quantity, clamped to a minimum of 1.
func SetCartItemQuantity(manager *cartsvc.Manager, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := manager.SetQuantity(chi.URLParam(r, "cartID"), chi.URLParam(r, "itemID"), payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(snap, moneyFmt))
	}
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(manager *cartsvc.Manager, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := manager.RemoveItem(chi.URLParam(r, "cartID"), chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(snap, moneyFmt))
	}
}

// ClearCart empties the cart, keeping the session alive.
func ClearCart(manager *cartsvc.Manager, moneyFmt *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := manager.Clear(chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(snap, moneyFmt))
	}
}
