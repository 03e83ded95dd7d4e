package controllers

import (
	"net/http"
	"strings"

	"github.com/casamaria/storefront-backend/api/responses"
	"github.com/casamaria/storefront-backend/api/validators"
	chatsvc "github.com/casamaria/storefront-backend/internal/chat"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

type chatTurnJSON struct {
	Role string `json:"role" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type chatRequest struct {
	History []chatTurnJSON `json:"history,omitempty" validate:"omitempty,dive"`
	Message string         `json:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// PublicChat forwards a storefront message to the assistant. When the
// assistant is not configured the widget gets the standing apology.
func PublicChat(svc *chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteSuccess(w, chatResponse{Reply: chatsvc.FallbackUpstreamDown})
			return
		}

		var payload chatRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history := make([]chatsvc.Turn, 0, len(payload.History))
		for _, turn := range payload.History {
			role, err := enums.ParseChatRole(strings.TrimSpace(turn.Role))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid chat role"))
				return
			}
			history = append(history, chatsvc.Turn{Role: role, Text: turn.Text})
		}

		reply, err := svc.Send(r.Context(), history, payload.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, chatResponse{Reply: reply})
	}
}
