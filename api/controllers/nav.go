package controllers

import (
	"net/http"
	"strings"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/internal/nav"
	pkgAuth "github.com/casamaria/storefront-backend/pkg/auth"
	"github.com/casamaria/storefront-backend/pkg/auth/session"
	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

// NavResolve maps a requested route token to the page the client should
// render. Auth is optional here: a valid bearer token unlocks the admin
// dashboard, anything else redirects to the login page.
func NavResolve(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("route")
		responses.WriteSuccess(w, nav.Resolve(token, hasAdminSession(r, cfg, verifier)))
	}
}

func hasAdminSession(r *http.Request, cfg config.JWTConfig, verifier session.AccessSessionChecker) bool {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return false
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, strings.TrimSpace(raw[7:]))
	if err != nil || claims.ID == "" {
		return false
	}
	if verifier == nil {
		return false
	}
	ok, err := verifier.HasSession(r.Context(), claims.ID)
	return err == nil && ok
}
