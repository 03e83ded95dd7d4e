package controllers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	mediasvc "github.com/casamaria/storefront-backend/internal/media"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type processImageRequest struct {
	Data string `json:"data" validate:"required"`
	Slot string `json:"slot,omitempty"`
}

type processImageResponse struct {
	Image string `json:"image"`
}

// AdminProcessImage normalizes an uploaded image. Without a slot it
// produces the square menu-item crop; with one it produces the wide
// storefront crop. Data is base64, with or without a data URI prefix.
func AdminProcessImage(normalizer *mediasvc.Normalizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload processImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := decodeUpload(payload.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var uri string
		if payload.Slot == "" {
			uri, err = normalizer.NormalizeItemImage(raw)
		} else {
			var slot enums.ImageSlot
			slot, err = enums.ParseImageSlot(strings.TrimSpace(payload.Slot))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image slot"))
				return
			}
			uri, err = normalizer.NormalizeSlotImage(slot, raw)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, processImageResponse{Image: uri})
	}
}

func decodeUpload(data string) ([]byte, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base64 payload")
	}
	return raw, nil
}
