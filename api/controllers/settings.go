package controllers

import (
	"net/http"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	settingssvc "github.com/casamaria/storefront-backend/internal/settings"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

// PublicGetSettings returns the storefront imagery.
func PublicGetSettings(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Get(r.Context()))
	}
}

type updateSettingsRequest struct {
	HeroImage  *string `json:"hero_image,omitempty"`
	AboutImage *string `json:"about_image,omitempty"`
}

// AdminUpdateSettings overrides the storefront imagery. Oversized values
// come back as a storage capacity error and nothing changes.
func AdminUpdateSettings(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.HeroImage == nil && payload.AboutImage == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		updated, err := svc.Update(r.Context(), settingssvc.UpdateSettingsInput{
			HeroImage:  payload.HeroImage,
			AboutImage: payload.AboutImage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
