package storeHandler

import (
	"errors"
	"log"
	"net/http"

	"sabordigital/internal/adapters/in/http/middleware"
	usecase "sabordigital/internal/application/usecase"
)

// ProfileHandler serves GET /me for the signed-in customer. The response
// carries checkoutName, the value the checkout form prefills into the
// name field.
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

func NewProfileHandler(uc *usecase.ProfileUsecase) http.Handler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "profile handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.uc.Me(r.Context(), uid, middleware.CurrentEmail(r), middleware.CurrentDisplayName(r))
	if err != nil {
		if errors.Is(err, usecase.ErrProfileInvalidArgument) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[profile_handler] GET exit status=500 uid=%q err=%v", uid, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[profile_handler] GET ok uid=%q role=%s", p.ID, p.Role)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           p.ID,
		"email":        p.Email,
		"displayName":  p.DisplayName,
		"role":         p.Role,
		"checkoutName": p.CheckoutName(),
	})
}
