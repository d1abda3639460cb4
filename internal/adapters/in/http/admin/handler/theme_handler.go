package adminHandler

import (
	"errors"
	"log"
	"net/http"
	"time"

	usecase "sabordigital/internal/application/usecase"
	themedom "sabordigital/internal/domain/theme"
)

// ThemeAdminHandler lets the admin read and replace the storefront
// appearance.
type ThemeAdminHandler struct {
	uc *usecase.ThemeUsecase
}

func NewThemeAdminHandler(uc *usecase.ThemeUsecase) http.Handler {
	return &ThemeAdminHandler{uc: uc}
}

func (h *ThemeAdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "theme handler is not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := h.uc.Get(r.Context())
		if err != nil {
			log.Printf("[admin_theme_handler] GET exit status=500 err=%v", err)
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s)

	case http.MethodPut:
		var req themedom.Settings
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}

		s, err := h.uc.Update(r.Context(), req)
		if err != nil {
			if errors.Is(err, themedom.ErrInvalidSettings) {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("[admin_theme_handler] PUT exit status=500 err=%v", err)
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Printf("[admin_theme_handler] PUT ok elapsed=%s", time.Since(start))
		writeJSON(w, http.StatusOK, s)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
