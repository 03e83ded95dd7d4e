package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/casamaria/storefront-backend/api/responses"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

type reverseGeocodeResponse struct {
	Address string `json:"address"`
}

// PublicReverseGeocode turns captured GPS coordinates into a courier
// friendly street address.
func PublicReverseGeocode(client ReverseGeocoder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geocode client unavailable"))
			return
		}

		lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lat"))
			return
		}
		lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lng"))
			return
		}

		address, err := client.Reverse(r.Context(), lat, lng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reverseGeocodeResponse{Address: address})
	}
}
