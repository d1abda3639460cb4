package storeHandler

import (
	"log"
	"net/http"

	usecase "sabordigital/internal/application/usecase"
)

// ThemeHandler exposes the storefront appearance (read-only).
type ThemeHandler struct {
	uc *usecase.ThemeUsecase
}

func NewThemeHandler(uc *usecase.ThemeUsecase) http.Handler {
	return &ThemeHandler{uc: uc}
}

func (h *ThemeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "theme handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s, err := h.uc.Get(r.Context())
	if err != nil {
		log.Printf("[theme_handler] GET exit status=500 err=%v", err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}
