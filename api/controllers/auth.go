package controllers

import (
	"net/http"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	authsvc "github.com/casamaria/storefront-backend/internal/auth"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin verifies admin credentials and returns a bearer token.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "admin_email", result.Email), "admin logged in")
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the admin session.
func AuthLogout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AdminGetProfile returns the admin account without credential material.
func AdminGetProfile(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Profile(r.Context()))
	}
}

type updateProfileRequest struct {
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Image           *string `json:"image,omitempty"`
	NewPassword     string  `json:"new_password,omitempty"`
	ConfirmPassword string  `json:"confirm_password,omitempty"`
	CurrentPassword string  `json:"current_password,omitempty"`
}

// AdminUpdateProfile changes the admin account. A password change
// requires the current password and a matching confirmation.
func AdminUpdateProfile(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), authsvc.UpdateProfileInput{
			Email:           payload.Email,
			Image:           payload.Image,
			NewPassword:     payload.NewPassword,
			ConfirmPassword: payload.ConfirmPassword,
			CurrentPassword: payload.CurrentPassword,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
